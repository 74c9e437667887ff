package generator

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"kyc-screening/internal/models"
)

// Профили риска сгенерированных клиентов
const (
	RiskLow    = "low"
	RiskMedium = "medium"
	RiskHigh   = "high"
)

var (
	firstNames = []string{
		"Ahmed", "Omar", "Youssef", "Karim", "Tarek", "Hany", "Sara", "Mona",
		"Laila", "Nour", "John", "Maria", "Elena", "David", "Anna", "Peter",
	}
	lastNames = []string{
		"Mostafa", "Farouk", "Saleh", "Nasser", "Hamdy", "Ibrahim", "Fathy",
		"Kamel", "Smith", "Garcia", "Novak", "Schmidt", "Rossi", "Dubois",
	}

	lowRiskCountries    = []string{"EG", "AE", "SA", "JO", "GB", "DE", "FR", "US", "CA", "JP"}
	mediumRiskCountries = []string{"PK", "NG", "ET", "KE", "UG", "GH"}
	highRiskCountries   = []string{"AF", "IR", "KP", "SY", "YE", "SD", "SO", "LY"}

	regularOccupations = []string{
		"Engineer", "Teacher", "Accountant", "Doctor", "Pharmacist",
		"Software Developer", "Nurse", "Architect", "Sales Manager",
	}
	pepOccupations = []string{
		"Minister of Finance", "Ambassador", "Provincial Governor",
		"Member of Parliament", "Supreme Court Judge", "Army General",
	}
)

// CustomerGenerator генерирует тестовых клиентов с заданным профилем риска.
// Безопасен для одновременного использования из нескольких горутин.
type CustomerGenerator struct {
	mu   sync.Mutex
	rand *rand.Rand
	now  func() time.Time
	seq  int
}

func NewCustomerGenerator() *CustomerGenerator {
	return NewCustomerGeneratorWithSeed(time.Now().UnixNano())
}

// NewCustomerGeneratorWithSeed создает генератор с воспроизводимой последовательностью
func NewCustomerGeneratorWithSeed(seed int64) *CustomerGenerator {
	return &CustomerGenerator{
		rand: rand.New(rand.NewSource(seed)),
		now:  time.Now,
	}
}

// GenerateCustomer генерирует клиента с уровнем риска low, medium или high.
// Неизвестный уровень считается low.
func (g *CustomerGenerator) GenerateCustomer(riskLevel string) *models.Customer {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.generate(riskLevel)
}

// GenerateRandomCustomer генерирует клиента со случайным профилем риска
func (g *CustomerGenerator) GenerateRandomCustomer() *models.Customer {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.generateRandom()
}

// GenerateBatch генерирует n клиентов; пустой riskLevel означает случайный профиль для каждого
func (g *CustomerGenerator) GenerateBatch(n int, riskLevel string) []models.Customer {
	g.mu.Lock()
	defer g.mu.Unlock()

	customers := make([]models.Customer, 0, n)
	for i := 0; i < n; i++ {
		if riskLevel == "" {
			customers = append(customers, *g.generateRandom())
		} else {
			customers = append(customers, *g.generate(riskLevel))
		}
	}
	return customers
}

func (g *CustomerGenerator) generateRandom() *models.Customer {
	return g.generate(g.pick([]string{RiskLow, RiskLow, RiskMedium, RiskHigh}))
}

func (g *CustomerGenerator) generate(riskLevel string) *models.Customer {
	g.seq++
	c := &models.Customer{
		CustomerCode: fmt.Sprintf("CUST-AUTO-%s-%04d", g.now().UTC().Format("20060102150405"), g.seq),
		FullNameEn:   g.pick(firstNames) + " " + g.pick(lastNames),
		IDType:       models.IDTypePassport,
		IDNumber:     fmt.Sprintf("%c%07d", 'A'+rune(g.rand.Intn(26)), g.rand.Intn(10000000)),
		Gender:       g.pick([]string{"M", "F"}),
		CustomerType: "INDIVIDUAL",
	}

	switch strings.ToLower(riskLevel) {
	case RiskMedium:
		g.generateMediumRisk(c)
	case RiskHigh:
		g.generateHighRisk(c)
	default:
		g.generateLowRisk(c)
	}
	return c
}

// generateLowRisk: страна без повышенного риска, обычная профессия, возраст 25-60
func (g *CustomerGenerator) generateLowRisk(c *models.Customer) {
	c.NationalityCode = g.pick(lowRiskCountries)
	c.Occupation = g.pick(regularOccupations)
	c.DateOfBirth = g.birthDate(25, 60)
}

// generateMediumRisk: страна среднего риска либо возраст старше порога
func (g *CustomerGenerator) generateMediumRisk(c *models.Customer) {
	c.Occupation = g.pick(regularOccupations)
	if g.rand.Intn(2) == 0 {
		c.NationalityCode = g.pick(mediumRiskCountries)
		c.DateOfBirth = g.birthDate(25, 60)
		return
	}
	c.NationalityCode = g.pick(lowRiskCountries)
	c.DateOfBirth = g.birthDate(72, 85)
}

// generateHighRisk: высокорисковая страна и публичная должность
func (g *CustomerGenerator) generateHighRisk(c *models.Customer) {
	c.NationalityCode = g.pick(highRiskCountries)
	c.Occupation = g.pick(pepOccupations)
	c.PEPFlag = true
	c.DateOfBirth = g.birthDate(40, 68)
}

func (g *CustomerGenerator) birthDate(minAge, maxAge int) string {
	age := minAge + g.rand.Intn(maxAge-minAge+1)
	dob := g.now().UTC().AddDate(-age, -g.rand.Intn(12), -g.rand.Intn(28))
	return dob.Format("2006-01-02")
}

func (g *CustomerGenerator) pick(values []string) string {
	return values[g.rand.Intn(len(values))]
}
