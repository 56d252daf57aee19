package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"

	"github.com/codyseavey/tcg-vendor/internal/metrics"
	"github.com/codyseavey/tcg-vendor/internal/models"
)

const (
	catalogBaseURL        = "https://api.pokemontcg.io/v2"
	catalogDefaultTimeout = 10 * time.Second
	catalogCacheSize      = 256
)

// variantPreference is the fixed fallback order for resolving a single
// market price from the per-variant price map the catalog returns.
var variantPreference = []string{
	"normal",
	"holofoil",
	"reverseHolofoil",
	"1stEditionNormal",
	"1stEditionHolofoil",
}

// CatalogService looks cards up in the external catalog when the vendor
// acquires something not already in inventory. Responses are LRU-cached and
// requests are throttled with a token bucket plus a daily budget.
type CatalogService struct {
	client     *http.Client
	apiKey     string
	baseURL    string
	limiter    *rate.Limiter
	cache      *lru.Cache[string, []models.TradeItem]
	dailyLimit int

	mu             sync.Mutex
	requestsToday  int
	lastRequestDay time.Time
}

func NewCatalogService(apiKey string, dailyLimit int) *CatalogService {
	if dailyLimit <= 0 {
		dailyLimit = 1000
	}
	cache, _ := lru.New[string, []models.TradeItem](catalogCacheSize)

	return &CatalogService{
		client: &http.Client{
			Timeout: catalogDefaultTimeout,
		},
		apiKey:     apiKey,
		baseURL:    catalogBaseURL,
		limiter:    rate.NewLimiter(rate.Limit(2), 1), // catalog allows ~2 req/s sustained
		cache:      cache,
		dailyLimit: dailyLimit,
	}
}

type catalogSearchResponse struct {
	Data []catalogCard `json:"data"`
}

type catalogCard struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Number string `json:"number"`
	Rarity string `json:"rarity"`
	Set    struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"set"`
	TCGPlayer *struct {
		Prices map[string]catalogVariantPrice `json:"prices"`
	} `json:"tcgplayer"`
}

// catalogVariantPrice carries the price fields for one printing variant.
// Missing fields decode to 0.
type catalogVariantPrice struct {
	Low    float64 `json:"low"`
	Mid    float64 `json:"mid"`
	High   float64 `json:"high"`
	Market float64 `json:"market"`
}

// marketPrice walks the variant preference order and returns the first
// non-zero market price, falling back to mid within each variant.
func (c catalogCard) marketPrice() float64 {
	if c.TCGPlayer == nil || c.TCGPlayer.Prices == nil {
		return 0
	}
	for _, variant := range variantPreference {
		price, ok := c.TCGPlayer.Prices[variant]
		if !ok {
			continue
		}
		if price.Market > 0 {
			return price.Market
		}
		if price.Mid > 0 {
			return price.Mid
		}
	}
	return 0
}

// checkDailyQuota counts a request against the daily budget, resetting at
// midnight. Returns false when the budget is spent.
func (s *CatalogService) checkDailyQuota() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	if s.lastRequestDay.Before(today) {
		s.requestsToday = 0
		s.lastRequestDay = today
	}

	if s.requestsToday >= s.dailyLimit {
		return false
	}

	s.requestsToday++
	metrics.CatalogQuotaRemaining.Set(float64(s.dailyLimit - s.requestsToday))
	return true
}

// RequestsRemaining returns the catalog requests left today.
func (s *CatalogService) RequestsRemaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if s.lastRequestDay.Before(today) {
		return s.dailyLimit
	}

	remaining := s.dailyLimit - s.requestsToday
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Search queries the catalog by name, or by set+number when given. Results
// come back as draft-ready items with the resolved market price.
func (s *CatalogService) Search(ctx context.Context, name, setCode, number string) ([]models.TradeItem, error) {
	cacheKey := strings.ToLower(fmt.Sprintf("%s|%s|%s", name, setCode, number))
	if cached, ok := s.cache.Get(cacheKey); ok {
		metrics.CatalogRequestsTotal.WithLabelValues("hit").Inc()
		return cached, nil
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	// Quota is counted only once the limiter lets the call through; a
	// cancelled wait must not burn a slot from the daily budget.
	if !s.checkDailyQuota() {
		metrics.CatalogRequestsTotal.WithLabelValues("rate_limited").Inc()
		return nil, fmt.Errorf("catalog daily request limit exceeded")
	}

	var clauses []string
	if name != "" {
		clauses = append(clauses, fmt.Sprintf("name:%q", name))
	}
	if setCode != "" {
		clauses = append(clauses, fmt.Sprintf("set.id:%s", setCode))
	}
	if number != "" {
		clauses = append(clauses, fmt.Sprintf("number:%s", number))
	}

	params := url.Values{}
	params.Set("q", strings.Join(clauses, " "))
	params.Set("pageSize", "20")
	reqURL := fmt.Sprintf("%s/cards?%s", s.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if s.apiKey != "" {
		req.Header.Set("X-Api-Key", s.apiKey)
	}

	start := time.Now()
	resp, err := s.client.Do(req)
	metrics.CatalogRequestDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.CatalogRequestsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("catalog lookup failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.CatalogRequestsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("catalog API returned status %d", resp.StatusCode)
	}

	var searchResp catalogSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		metrics.CatalogRequestsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to decode catalog response: %w", err)
	}

	items := make([]models.TradeItem, 0, len(searchResp.Data))
	for _, card := range searchResp.Data {
		// The catalog id identifies the printing, not a physical copy; the
		// draft layer assigns a fresh id when one of these is added.
		item := models.TradeItem{
			ID:          card.ID,
			Kind:        models.ItemKindCard,
			Name:        card.Name,
			SetName:     card.Set.Name,
			CardNumber:  card.Number,
			Condition:   models.ConditionNearMint,
			MarketValue: card.marketPrice(),
			Origin:      models.OriginCatalogLookup,
		}
		if models.EditionApplies(card.Set.ID) {
			edition := models.EditionUnlimited
			item.Edition = &edition
		}
		items = append(items, item)
	}

	s.cache.Add(cacheKey, items)
	metrics.CatalogRequestsTotal.WithLabelValues("miss").Inc()
	return items, nil
}
