package rest

import (
	"errors"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"kyc-screening/internal/generator"
	"kyc-screening/internal/models"
	"kyc-screening/internal/report"
	"kyc-screening/internal/services"
	"kyc-screening/internal/storage"
	"kyc-screening/internal/validation"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const (
	defaultLimit = 100
	maxLimit     = 500

	defaultGenerateCount = 10
	maxGenerateCount     = 100
)

type Handlers struct {
	screening services.ScreeningService
	sanctions services.SanctionsService
	reports   services.ReportService
	generator *generator.CustomerGenerator
}

// Создает новые обработчики REST API
func NewHandlers(screening services.ScreeningService, sanctions services.SanctionsService, reports services.ReportService) *Handlers {
	return &Handlers{
		screening: screening,
		sanctions: sanctions,
		reports:   reports,
		generator: generator.NewCustomerGenerator(),
	}
}

// ScreenCustomer проверяет клиента по санкционным спискам
// @Summary Проверить клиента
// @Description Валидирует данные клиента, сверяет их с санкционными списками, рассчитывает риск и сохраняет результат. Клиент сохраняется только при результате CLEAR или CLEAR_WITH_WARNING.
// @Tags screenings
// @Accept json
// @Produce json
// @Param request body models.ScreeningRequest true "Данные клиента"
// @Success 201 {object} models.ScreeningResponse "Результат скрининга"
// @Failure 400 {object} map[string]interface{} "Ошибка валидации"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /screenings [post]
func (h *Handlers) ScreenCustomer(c *gin.Context) {
	var req models.ScreeningRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.screening.ScreenCustomer(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err, "Failed to screen customer")
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// ScreenBatch проверяет пакет клиентов
// @Summary Пакетная проверка
// @Description Проверяет список клиентов параллельно. Ошибки отдельных клиентов не прерывают пакет и возвращаются в results.
// @Tags screenings
// @Accept json
// @Produce json
// @Param request body models.BatchScreeningRequest true "Пакет клиентов"
// @Success 200 {object} models.BatchScreeningResponse "Итог пакетной проверки"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /screenings/batch [post]
func (h *Handlers) ScreenBatch(c *gin.Context) {
	var req models.BatchScreeningRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.screening.ScreenBatch(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err, "Failed to screen batch")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GenerateScreenings генерирует тестовых клиентов и проверяет их пакетом
// @Summary Сгенерировать и проверить клиентов
// @Description Создает случайных клиентов с заданным профилем риска и прогоняет их через пакетную проверку
// @Tags screenings
// @Produce json
// @Param risk query string false "Профиль риска (low, medium, high); пусто - случайный"
// @Param count query int false "Количество клиентов (максимум 100)" default(10)
// @Success 200 {object} models.BatchScreeningResponse "Итог пакетной проверки"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /screenings/generate [post]
func (h *Handlers) GenerateScreenings(c *gin.Context) {
	risk := strings.ToLower(c.Query("risk"))
	switch risk {
	case "", generator.RiskLow, generator.RiskMedium, generator.RiskHigh:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "risk must be one of: low, medium, high"})
		return
	}

	count := defaultGenerateCount
	if countStr := c.Query("count"); countStr != "" {
		parsed, err := strconv.Atoi(countStr)
		if err != nil || parsed <= 0 || parsed > maxGenerateCount {
			c.JSON(http.StatusBadRequest, gin.H{"error": "count must be between 1 and 100"})
			return
		}
		count = parsed
	}

	resp, err := h.screening.ScreenBatch(c.Request.Context(), &models.BatchScreeningRequest{
		PerformedBy: "generator",
		Customers:   h.generator.GenerateBatch(count, risk),
	})
	if err != nil {
		writeError(c, err, "Failed to screen generated customers")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ListScreenings возвращает историю скринингов
// @Summary История скринингов
// @Tags screenings
// @Produce json
// @Param customer_code query string false "Код клиента"
// @Param result query string false "Результат (CLEAR, REJECTED, ...)"
// @Param days query int false "Только за последние N дней"
// @Param limit query int false "Лимит результатов (максимум 500)" default(100)
// @Success 200 {object} map[string]interface{} "Список скринингов"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /screenings [get]
func (h *Handlers) ListScreenings(c *gin.Context) {
	filter := models.ScreeningFilter{
		CustomerCode: c.Query("customer_code"),
		Result:       strings.ToUpper(c.Query("result")),
		Limit:        queryLimit(c),
	}
	if days, err := strconv.Atoi(c.Query("days")); err == nil && days > 0 {
		filter.Since = time.Now().UTC().AddDate(0, 0, -days)
	}

	screenings, err := h.screening.ListScreenings(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err, "Failed to list screenings")
		return
	}

	c.JSON(http.StatusOK, gin.H{"screenings": screenings, "count": len(screenings)})
}

// GetScreening возвращает результат скрининга
// @Summary Получить скрининг
// @Tags screenings
// @Produce json
// @Param screening_id path string true "ID скрининга"
// @Success 200 {object} models.Screening "Результат скрининга"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /screenings/{screening_id} [get]
func (h *Handlers) GetScreening(c *gin.Context) {
	sc, err := h.screening.GetScreening(c.Request.Context(), c.Param("screening_id"))
	if err != nil {
		writeError(c, err, "Failed to get screening")
		return
	}
	if sc == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Screening not found"})
		return
	}

	c.JSON(http.StatusOK, sc)
}

// GetReport формирует отчет по скринингу
// @Summary Отчет по скринингу
// @Tags screenings
// @Produce json
// @Param screening_id path string true "ID скрининга"
// @Success 200 {object} models.Report "Отчет"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /screenings/{screening_id}/report [get]
func (h *Handlers) GetReport(c *gin.Context) {
	r, err := h.screening.GetReport(c.Request.Context(), c.Param("screening_id"))
	if err != nil {
		writeError(c, err, "Failed to build report")
		return
	}
	if r == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Screening not found"})
		return
	}

	c.JSON(http.StatusOK, r)
}

// ReviewScreening фиксирует решение офицера комплаенса
// @Summary Ручная проверка
// @Description Устанавливает итоговый результат скрининга и обновляет KYC статус клиента
// @Tags screenings
// @Accept json
// @Produce json
// @Param screening_id path string true "ID скрининга"
// @Param review body models.ReviewRequest true "Решение"
// @Success 200 {object} models.Screening "Обновленный скрининг"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /screenings/{screening_id}/review [put]
func (h *Handlers) ReviewScreening(c *gin.Context) {
	var req models.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sc, err := h.screening.Review(c.Request.Context(), c.Param("screening_id"), &req)
	if err != nil {
		writeError(c, err, "Failed to review screening")
		return
	}

	c.JSON(http.StatusOK, sc)
}

// ClearScreenings очищает историю скрининга
// @Summary Очистить историю скрининга
// @Description Удаляет все результаты скрининга и совпадения, очищает кеш и счетчики Redis. Клиенты и санкционные списки сохраняются.
// @Tags screenings
// @Produce json
// @Success 200 {object} map[string]interface{} "История очищена"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /screenings [delete]
func (h *Handlers) ClearScreenings(c *gin.Context) {
	if err := h.screening.ClearHistory(c.Request.Context()); err != nil {
		writeError(c, err, "Failed to clear screenings")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Screening history cleared successfully"})
}

// CacheStats возвращает счетчики скрининга из Redis
// @Summary Счетчики скрининга
// @Tags reports
// @Produce json
// @Success 200 {object} map[string]int64 "Счетчики по результатам и уровням риска"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /cache/stats [get]
func (h *Handlers) CacheStats(c *gin.Context) {
	stats, err := h.screening.CacheStats(c.Request.Context())
	if err != nil {
		writeError(c, err, "Failed to read cache stats")
		return
	}

	c.JSON(http.StatusOK, stats)
}

// ListCustomers возвращает сохраненных клиентов
// @Summary Список клиентов
// @Tags customers
// @Produce json
// @Param limit query int false "Лимит результатов (максимум 500)" default(100)
// @Success 200 {object} map[string]interface{} "Список клиентов"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /customers [get]
func (h *Handlers) ListCustomers(c *gin.Context) {
	customers, err := h.screening.ListCustomers(c.Request.Context(), queryLimit(c))
	if err != nil {
		writeError(c, err, "Failed to list customers")
		return
	}

	c.JSON(http.StatusOK, gin.H{"customers": customers, "count": len(customers)})
}

// GetCustomer возвращает клиента по коду
// @Summary Получить клиента
// @Tags customers
// @Produce json
// @Param customer_code path string true "Код клиента"
// @Success 200 {object} models.Customer "Клиент"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /customers/{customer_code} [get]
func (h *Handlers) GetCustomer(c *gin.Context) {
	customer, err := h.screening.GetCustomer(c.Request.Context(), c.Param("customer_code"))
	if err != nil {
		writeError(c, err, "Failed to get customer")
		return
	}
	if customer == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		return
	}

	c.JSON(http.StatusOK, customer)
}

// SearchSanctions ищет записи санкционных списков
// @Summary Поиск по санкционным спискам
// @Description Ищет подстроку в именах и псевдонимах. С fuzzy=true результаты ранжируются по нечеткой схожести.
// @Tags sanctions
// @Produce json
// @Param q query string true "Имя или часть имени"
// @Param fuzzy query bool false "Нечеткий поиск"
// @Param limit query int false "Лимит результатов (максимум 500)" default(100)
// @Success 200 {object} map[string]interface{} "Найденные записи"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /sanctions [get]
func (h *Handlers) SearchSanctions(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter q is required"})
		return
	}
	fuzzy, _ := strconv.ParseBool(c.Query("fuzzy"))

	results, err := h.sanctions.Search(c.Request.Context(), query, queryLimit(c), fuzzy)
	if err != nil {
		writeError(c, err, "Failed to search sanctions")
		return
	}

	c.JSON(http.StatusOK, gin.H{"query": query, "results": results, "count": len(results)})
}

// GetSanction возвращает запись санкционного списка
// @Summary Получить запись санкционного списка
// @Tags sanctions
// @Produce json
// @Param id path int true "ID записи"
// @Success 200 {object} models.Sanction "Запись"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /sanctions/{id} [get]
func (h *Handlers) GetSanction(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid sanction id"})
		return
	}

	sanction, err := h.sanctions.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err, "Failed to get sanction")
		return
	}
	if sanction == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Sanction not found"})
		return
	}

	c.JSON(http.StatusOK, sanction)
}

// GetStatistics возвращает статистику системы
// @Summary Статистика
// @Tags reports
// @Produce json
// @Success 200 {object} models.Statistics "Статистика"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /statistics [get]
func (h *Handlers) GetStatistics(c *gin.Context) {
	stats, err := h.reports.Statistics(c.Request.Context())
	if err != nil {
		writeError(c, err, "Failed to get statistics")
		return
	}

	c.JSON(http.StatusOK, stats)
}

// Export выгружает данные в файл и отдает его клиенту
// @Summary Выгрузка данных
// @Description Выгружает sanctions, screenings или customers в CSV, statistics в JSON
// @Tags reports
// @Produce octet-stream
// @Param kind path string true "Тип выгрузки" Enums(sanctions, screenings, customers, statistics)
// @Success 200 {file} file "Файл выгрузки"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /export/{kind} [get]
func (h *Handlers) Export(c *gin.Context) {
	path, err := h.reports.Export(c.Request.Context(), c.Param("kind"))
	if err != nil {
		writeError(c, err, "Failed to export data")
		return
	}

	c.FileAttachment(path, filepath.Base(path))
}

// ComplianceReport формирует сводный отчет
// @Summary Сводный отчет
// @Tags reports
// @Produce json
// @Param kind path string true "Тип отчета" Enums(risk, activity, compliance)
// @Param days query int false "Период в днях" default(30)
// @Success 200 {object} models.ComplianceReport "Отчет"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /reports/{kind} [get]
func (h *Handlers) ComplianceReport(c *gin.Context) {
	days, _ := strconv.Atoi(c.Query("days"))

	r, err := h.reports.ComplianceReport(c.Request.Context(), c.Param("kind"), days)
	if err != nil {
		writeError(c, err, "Failed to build report")
		return
	}

	c.JSON(http.StatusOK, r)
}

// writeError переводит ошибку сервиса в HTTP ответ
func writeError(c *gin.Context, err error, message string) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validation.ErrValidation.Error(), "details": verr.Messages})
	case errors.Is(err, validation.ErrValidation),
		errors.Is(err, services.ErrInvalidReview),
		errors.Is(err, report.ErrUnknownExport),
		errors.Is(err, report.ErrUnknownReport):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, storage.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg(message)
		c.JSON(http.StatusInternalServerError, gin.H{"error": message})
	}
}

func queryLimit(c *gin.Context) int {
	limit := defaultLimit
	if limitStr := c.Query("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 && parsed <= maxLimit {
			limit = parsed
		}
	}
	return limit
}
