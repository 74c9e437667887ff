package services

import (
	"context"
	"sort"
	"strings"

	"kyc-screening/internal/config"
	"kyc-screening/internal/logger"
	"kyc-screening/internal/matching"
	"kyc-screening/internal/models"
	"kyc-screening/internal/sanctions"
	"kyc-screening/internal/screening"
	"kyc-screening/internal/storage"
)

const defaultSearchLimit = 50

// SanctionsServiceImpl реализует интерфейс SanctionsService
type SanctionsServiceImpl struct {
	repo   storage.Repository
	loader *sanctions.Loader
	rules  *config.Rules
	opts   []sanctions.WebOption
}

// NewSanctionsService создает новый сервис санкционных списков
func NewSanctionsService(repo storage.Repository, loader *sanctions.Loader, rules *config.Rules, opts ...sanctions.WebOption) SanctionsService {
	if rules == nil {
		rules = config.DefaultRules()
	}
	return &SanctionsServiceImpl{
		repo:   repo,
		loader: loader,
		rules:  rules,
		opts:   opts,
	}
}

// Search ищет подстроку в именах и псевдонимах. При fuzzy к выборке добавляются
// кандидаты по частям имени, а результат сортируется по нечеткой схожести.
func (s *SanctionsServiceImpl) Search(ctx context.Context, query string, limit int, fuzzy bool) ([]*models.SanctionSearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []*models.SanctionSearchResult{}, nil
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	found, err := s.repo.SearchSanctions(ctx, query, limit)
	if err != nil {
		return nil, err
	}

	results := make([]*models.SanctionSearchResult, 0, len(found))
	seen := make(map[int64]struct{}, len(found))
	for _, sanction := range found {
		seen[sanction.ID] = struct{}{}
		results = append(results, &models.SanctionSearchResult{Sanction: *sanction})
	}
	if !fuzzy {
		return results, nil
	}

	for i := range results {
		results[i].Score = bestFuzzyScore(query, &results[i].Sanction)
	}

	candidates, err := s.repo.FindCandidates(ctx, screening.SearchTerms(&models.Customer{FullNameEn: query}), limit)
	if err != nil {
		return nil, err
	}
	threshold := s.rules.Screening.NameMatchThreshold
	for _, sanction := range candidates {
		if _, ok := seen[sanction.ID]; ok {
			continue
		}
		seen[sanction.ID] = struct{}{}
		if score := bestFuzzyScore(query, sanction); score >= threshold {
			results = append(results, &models.SanctionSearchResult{Sanction: *sanction, Score: score})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func bestFuzzyScore(query string, sanction *models.Sanction) float64 {
	best := 0.0
	for _, name := range []string{sanction.FullNameEn, sanction.AliasEn} {
		if name == "" {
			continue
		}
		if _, score := matching.FuzzyMatchNames(query, name, 0); score > best {
			best = score
		}
	}
	return best
}

func (s *SanctionsServiceImpl) Get(ctx context.Context, id int64) (*models.Sanction, error) {
	return s.repo.GetSanction(ctx, id)
}

// Import загружает список из файла или по http(s) адресу
func (s *SanctionsServiceImpl) Import(ctx context.Context, location string) (*sanctions.ImportResult, error) {
	src := sanctions.NewSourceFromLocation(location, s.opts...)
	result, err := s.loader.Import(ctx, src)
	if err != nil {
		return nil, err
	}

	logger.LogEvent(logger.EventSanctionsImported, defaultServiceName, "sanctions", map[string]any{
		"source":   result.Source,
		"imported": result.Imported,
		"skipped":  result.Skipped,
	})
	return result, nil
}

func (s *SanctionsServiceImpl) Count(ctx context.Context) (int, error) {
	return s.repo.CountSanctions(ctx)
}
