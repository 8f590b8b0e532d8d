package recommend

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"myTerpMarket/domain"
	"myTerpMarket/pkg/logger"
)

// Blending weights. The local path sums to 1.0; the AI path trades 0.2 of
// terpene weight for a capped AI boost so the combined maximum stays 1.0.
const (
	localSimilarityWeight = 0.8
	aiSimilarityWeight    = 0.6
	inventoryWeight       = 0.2
	aiBoostCap            = 0.2
)

const defaultPageSize = 12

const searchLogTimeout = 5 * time.Second

// ---- Collaborator interfaces ----

// ExternalRecommender is the optional AI scoring service. Nil responses,
// empty recommendation lists, and errors are all treated as "no AI boost".
type ExternalRecommender interface {
	Recommend(ctx context.Context, query string) (*domain.AIRecommendationResponse, error)
}

// SearchLogger persists search history. Called fire-and-forget; failures
// never affect the recommendation response.
type SearchLogger interface {
	LogSearch(ctx context.Context, entry domain.SearchQueryLog) error
}

// ---- Engine ----

// Engine ranks a product catalog against a free-text vibe query. It is
// stateless across calls: the catalog is passed in per call and never
// mutated, so concurrent calls need no coordination.
type Engine struct {
	parser      *VibeParser
	recommender ExternalRecommender
	searchRepo  SearchLogger
}

// NewEngine wires the engine. recommender and searchRepo may be nil; the
// engine then skips the AI path and search logging respectively.
func NewEngine(parser *VibeParser, recommender ExternalRecommender, searchRepo SearchLogger) *Engine {
	return &Engine{
		parser:      parser,
		recommender: recommender,
		searchRepo:  searchRepo,
	}
}

// Request is one page of a vibe search. Offset is the only "state" of a
// load-more flow; callers thread it through between calls.
type Request struct {
	Query          string
	UserType       string
	PageSize       int
	Offset         int
	OrganizationID string
}

// Recommend filters the catalog to in-stock items, scores them against the
// parsed vibe (blending in the external recommender when it answers), and
// returns one ranked page. It never returns an error: every failure mode
// degrades into local scoring or an empty result.
func (e *Engine) Recommend(ctx context.Context, catalog []domain.ProductWithVariant, req Request) (result domain.RecommendationResult) {
	if req.PageSize <= 0 {
		req.PageSize = defaultPageSize
	}
	if req.Offset < 0 {
		req.Offset = 0
	}

	defer func() {
		if r := recover(); r != nil {
			logger.Error("recommendation pipeline panic, serving local fallback",
				"trace_id", TraceIDFromContext(ctx), "panic", r)
			PanicRecoveriesTotal.Inc()
			result = e.recoverLocal(catalog, req)
		}
	}()

	query := strings.ToLower(strings.TrimSpace(req.Query))
	profile, effects := e.parser.Parse(query)

	category := categoryFromQuery(query)
	candidates := filterAvailable(filterCategory(catalog, category))

	if len(candidates) == 0 {
		return domain.RecommendationResult{
			Products:  []domain.ProductWithVariant{},
			Effects:   effects,
			AIPowered: false,
		}
	}

	if e.recommender != nil {
		aiResp, err := e.recommender.Recommend(ctx, req.Query)
		switch {
		case err != nil:
			logger.Debug("external recommender unavailable, using local scoring",
				"trace_id", TraceIDFromContext(ctx), "error", err)
			ExternalRecommenderErrorsTotal.Inc()
		case aiResp == nil || len(aiResp.Recommendations) == 0:
			// no usable matches; local scoring carries the result
		default:
			result = e.rankWithAI(candidates, profile, effects, aiResp, req)
			e.dispatchSearchLog(ctx, req, result.Products)
			RecommendServedTotal.WithLabelValues(req.UserType, strconv.FormatBool(true)).Inc()
			return result
		}
	}

	result = e.rankLocal(candidates, profile, effects, req)
	e.dispatchSearchLog(ctx, req, result.Products)
	RecommendServedTotal.WithLabelValues(req.UserType, strconv.FormatBool(false)).Inc()
	return result
}

// ---- Scoring paths ----

type scoredCandidate struct {
	item  domain.ProductWithVariant
	score float64
}

// rankLocal scores candidates on terpene similarity and inventory health
// alone. Also the fallback for every degraded mode.
func (e *Engine) rankLocal(candidates []domain.ProductWithVariant, profile domain.TerpeneProfile, effects []string, req Request) domain.RecommendationResult {
	scored := make([]scoredCandidate, 0, len(candidates))
	for _, c := range candidates {
		s := localSimilarityWeight*TerpeneSimilarity(profile, c.Variant.TerpeneProfile) +
			inventoryWeight*InventoryScore(c.Variant.InventoryLevel)
		scored = append(scored, scoredCandidate{item: c, score: s})
	}

	page, total := sortAndPage(scored, req.Offset, req.PageSize)

	return domain.RecommendationResult{
		Products:       page,
		Effects:        effects,
		AIPowered:      false,
		TotalAvailable: total,
	}
}

// recoverLocal rebuilds a local-only result after a pipeline panic. The
// replay runs under its own recover, so if the local path is what panicked
// the caller still gets a well-formed empty result.
func (e *Engine) recoverLocal(catalog []domain.ProductWithVariant, req Request) (result domain.RecommendationResult) {
	result = domain.RecommendationResult{
		Products: []domain.ProductWithVariant{},
		Effects:  append([]string(nil), balancedEffects...),
	}

	defer func() {
		if r := recover(); r != nil {
			logger.Error("local fallback panic, serving empty result", "panic", r)
		}
	}()

	query := strings.ToLower(strings.TrimSpace(req.Query))
	profile, effects := e.parser.Parse(query)
	candidates := filterAvailable(filterCategory(catalog, categoryFromQuery(query)))

	return e.rankLocal(candidates, profile, effects, req)
}

// rankWithAI blends terpene similarity, inventory health, and a capped boost
// from signals the external recommender reported.
func (e *Engine) rankWithAI(candidates []domain.ProductWithVariant, profile domain.TerpeneProfile, effects []string, aiResp *domain.AIRecommendationResponse, req Request) domain.RecommendationResult {
	scored := make([]scoredCandidate, 0, len(candidates))
	for _, c := range candidates {
		s := aiSimilarityWeight*TerpeneSimilarity(profile, c.Variant.TerpeneProfile) +
			inventoryWeight*InventoryScore(c.Variant.InventoryLevel) +
			aiBoost(c.Product, aiResp)
		scored = append(scored, scoredCandidate{item: c, score: s})
	}

	page, total := sortAndPage(scored, req.Offset, req.PageSize)

	resultEffects := effects
	if len(aiResp.Effects) > 0 {
		resultEffects = aiResp.Effects
	}

	result := domain.RecommendationResult{
		Products:       page,
		Effects:        resultEffects,
		AIPowered:      true,
		TotalAvailable: total,
	}

	// Narrative content belongs to the first page only.
	if req.Offset == 0 {
		result.PersonalizedMessage = aiResp.PersonalizedMessage
		result.ContextFactors = aiResp.ContextFactors
	}

	return result
}

// aiBoost accumulates small bonuses for every AI-reported signal that shows
// up on the product, capped so AI hints can reorder but never dominate.
func aiBoost(p domain.Product, aiResp *domain.AIRecommendationResponse) float64 {
	name := strings.ToLower(p.Name)
	meta := strings.ToLower(p.StrainType + " " + p.Category)

	boost := 0.0

	for _, eff := range aiResp.Effects {
		e := strings.ToLower(strings.TrimSpace(eff))
		if e == "" {
			continue
		}
		if strings.Contains(name, e) || strings.Contains(meta, e) {
			boost += 0.05
		}
	}

	for _, rec := range aiResp.Recommendations {
		ip := rec.IdealProfile
		if ip.StrainType != "" && strings.EqualFold(ip.StrainType, p.StrainType) {
			boost += 0.1
		}
		if ip.PreferredCategory != "" && strings.EqualFold(ip.PreferredCategory, p.Category) {
			boost += 0.05
		}
		for _, terp := range ip.DominantTerpenes {
			t := strings.ToLower(strings.TrimSpace(terp))
			if t != "" && strings.Contains(name, t) {
				boost += 0.05
			}
		}
	}

	if boost > aiBoostCap {
		boost = aiBoostCap
	}
	return boost
}

// sortAndPage sorts descending by score (stable, so ties keep catalog order)
// and slices out the requested page.
func sortAndPage(scored []scoredCandidate, offset, pageSize int) ([]domain.ProductWithVariant, int) {
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	total := len(scored)
	if offset >= total {
		return []domain.ProductWithVariant{}, total
	}

	end := offset + pageSize
	if end > total {
		end = total
	}

	page := make([]domain.ProductWithVariant, 0, end-offset)
	for _, s := range scored[offset:end] {
		page = append(page, s.item)
	}

	return page, total
}

// ---- Filters ----

// categoryKeywords maps query substrings to catalog categories, checked in
// order. Plural forms are covered by their singular substring.
var categoryKeywords = []struct {
	key      string
	category string
}{
	{"concentrate", domain.CategoryConcentrate},
	{"extract", domain.CategoryConcentrate},
	{"flower", domain.CategoryFlower},
	{"bud", domain.CategoryFlower},
	{"edible", domain.CategoryEdible},
	{"vape", domain.CategoryVaporizer},
	{"cartridge", domain.CategoryVaporizer},
	{"vaporizer", domain.CategoryVaporizer},
}

func categoryFromQuery(query string) string {
	for _, ck := range categoryKeywords {
		if strings.Contains(query, ck.key) {
			return ck.category
		}
	}
	return ""
}

func filterCategory(catalog []domain.ProductWithVariant, category string) []domain.ProductWithVariant {
	if category == "" {
		return catalog
	}

	out := make([]domain.ProductWithVariant, 0, len(catalog))
	for _, c := range catalog {
		if strings.EqualFold(c.Product.Category, category) {
			out = append(out, c)
		}
	}
	return out
}

func filterAvailable(catalog []domain.ProductWithVariant) []domain.ProductWithVariant {
	out := make([]domain.ProductWithVariant, 0, len(catalog))
	for _, c := range catalog {
		if c.Variant == nil || !c.Variant.IsAvailable || c.Variant.InventoryLevel <= 0 {
			continue
		}
		out = append(out, c)
	}
	return out
}

// ---- Search logging ----

// dispatchSearchLog records the query in the background. Only first-page
// searches with a known organization are logged; failures go to diagnostics
// and a counter, never to the caller.
func (e *Engine) dispatchSearchLog(ctx context.Context, req Request, products []domain.ProductWithVariant) {
	if e.searchRepo == nil || req.OrganizationID == "" || req.Offset != 0 {
		return
	}

	role := domain.UserTypeStaff
	if req.UserType == domain.UserTypeKiosk {
		role = "customer"
	}

	productIDs := make([]uint64, 0, len(products))
	for _, p := range products {
		productIDs = append(productIDs, p.Product.ID)
	}

	entry := domain.SearchQueryLog{
		OrganizationID: req.OrganizationID,
		QueryText:      req.Query,
		CallerRole:     role,
		ProductIDs:     productIDs,
	}

	tid := TraceIDFromContext(ctx)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("search log writer panic", "trace_id", tid, "panic", r)
				SearchLogFailuresTotal.Inc()
			}
		}()

		// Detached from the request context so a finished HTTP request
		// cannot cancel the write.
		logCtx, cancel := context.WithTimeout(context.Background(), searchLogTimeout)
		defer cancel()

		if err := e.searchRepo.LogSearch(logCtx, entry); err != nil {
			logger.Error("failed to persist search query log", "trace_id", tid, "error", err)
			SearchLogFailuresTotal.Inc()
		}
	}()
}
