package recommend

import (
	"context"
	"errors"
	"testing"
	"time"

	"myTerpMarket/domain"
)

// ---- fakes ----

type fakeRecommender struct {
	resp *domain.AIRecommendationResponse
	err  error
}

func (f *fakeRecommender) Recommend(ctx context.Context, query string) (*domain.AIRecommendationResponse, error) {
	return f.resp, f.err
}

type fakeSearchLogger struct {
	entries chan domain.SearchQueryLog
	err     error
}

func newFakeSearchLogger() *fakeSearchLogger {
	return &fakeSearchLogger{entries: make(chan domain.SearchQueryLog, 8)}
}

func (f *fakeSearchLogger) LogSearch(ctx context.Context, entry domain.SearchQueryLog) error {
	f.entries <- entry
	return f.err
}

func makeItem(id uint64, name, category, strainType string, profile domain.TerpeneProfile, inventory int, available bool) domain.ProductWithVariant {
	return domain.ProductWithVariant{
		Product: domain.Product{
			ID:         id,
			Name:       name,
			Category:   category,
			StrainType: strainType,
		},
		Variant: &domain.Variant{
			ID:             id * 100,
			ProductID:      id,
			Price:          25,
			TerpeneProfile: profile,
			InventoryLevel: inventory,
			IsAvailable:    available,
		},
	}
}

func localEngine() *Engine {
	return NewEngine(NewVibeParser(DefaultVibeMappings()), nil, nil)
}

// ---- local scoring path ----

func TestRecommendRanksTerpeneMatchFirst(t *testing.T) {
	catalog := []domain.ProductWithVariant{
		makeItem(1, "Granddaddy Purple", domain.CategoryFlower, domain.StrainIndica, domain.TerpeneProfile{"myrcene": 0.8}, 10, true),
		makeItem(2, "Super Lemon Haze", domain.CategoryFlower, domain.StrainSativa, domain.TerpeneProfile{"limonene": 0.8}, 10, true),
		makeItem(3, "Mystery Flower", domain.CategoryFlower, domain.StrainHybrid, domain.TerpeneProfile{}, 10, true),
	}

	res := localEngine().Recommend(context.Background(), catalog, Request{
		Query:    "relaxed",
		UserType: domain.UserTypeKiosk,
		PageSize: 10,
	})

	if len(res.Products) != 3 {
		t.Fatalf("got %d products, want 3", len(res.Products))
	}
	if res.Products[0].Product.ID != 1 {
		t.Errorf("myrcene-heavy product should rank first, got id %d", res.Products[0].Product.ID)
	}
	// Products 2 and 3 both score on inventory alone; stable sort keeps
	// catalog order.
	if res.Products[1].Product.ID != 2 || res.Products[2].Product.ID != 3 {
		t.Errorf("tie order not preserved: %d, %d", res.Products[1].Product.ID, res.Products[2].Product.ID)
	}
	if res.AIPowered {
		t.Error("local path should not report AI powered")
	}
	if res.TotalAvailable != 3 {
		t.Errorf("TotalAvailable = %d, want 3", res.TotalAvailable)
	}
}

func TestRecommendExcludesUnavailable(t *testing.T) {
	catalog := []domain.ProductWithVariant{
		makeItem(1, "In Stock", domain.CategoryFlower, domain.StrainHybrid, domain.TerpeneProfile{"myrcene": 0.8}, 5, true),
		makeItem(2, "Sold Out", domain.CategoryFlower, domain.StrainHybrid, domain.TerpeneProfile{"myrcene": 0.8}, 0, true),
		makeItem(3, "Disabled", domain.CategoryFlower, domain.StrainHybrid, domain.TerpeneProfile{"myrcene": 0.8}, 5, false),
		{Product: domain.Product{ID: 4, Name: "No Variant", Category: domain.CategoryFlower}},
	}

	res := localEngine().Recommend(context.Background(), catalog, Request{Query: "relaxed", PageSize: 10})

	if len(res.Products) != 1 || res.Products[0].Product.ID != 1 {
		t.Fatalf("expected only the in-stock product, got %v", res.Products)
	}
}

func TestRecommendEmptyCatalog(t *testing.T) {
	catalog := []domain.ProductWithVariant{
		makeItem(1, "Sold Out A", domain.CategoryFlower, domain.StrainHybrid, domain.TerpeneProfile{"myrcene": 0.8}, 0, true),
		makeItem(2, "Sold Out B", domain.CategoryEdible, domain.StrainHybrid, domain.TerpeneProfile{"limonene": 0.5}, 0, true),
	}

	res := localEngine().Recommend(context.Background(), catalog, Request{Query: "relaxed", PageSize: 10})

	if len(res.Products) != 0 {
		t.Errorf("products = %v, want empty", res.Products)
	}
	if len(res.Effects) == 0 {
		t.Error("empty result should still carry the parsed effects")
	}
	if res.AIPowered {
		t.Error("empty result should not be AI powered")
	}
	if res.TotalAvailable != 0 {
		t.Errorf("TotalAvailable = %d, want 0", res.TotalAvailable)
	}
}

func TestRecommendCategoryFilter(t *testing.T) {
	catalog := []domain.ProductWithVariant{
		makeItem(1, "Live Resin", domain.CategoryConcentrate, domain.StrainHybrid, domain.TerpeneProfile{"caryophyllene": 0.2}, 10, true),
		makeItem(2, "OG Kush", domain.CategoryFlower, domain.StrainIndica, domain.TerpeneProfile{"caryophyllene": 0.7, "limonene": 0.6, "myrcene": 0.5}, 10, true),
		makeItem(3, "Gummy Pack", domain.CategoryEdible, domain.StrainHybrid, domain.TerpeneProfile{"caryophyllene": 0.7}, 10, true),
		makeItem(4, "Shatter", domain.CategoryConcentrate, domain.StrainSativa, domain.TerpeneProfile{}, 10, true),
	}

	res := localEngine().Recommend(context.Background(), catalog, Request{Query: "concentrate", PageSize: 10})

	if len(res.Products) != 2 {
		t.Fatalf("got %d products, want 2 concentrates", len(res.Products))
	}
	for _, p := range res.Products {
		if p.Product.Category != domain.CategoryConcentrate {
			t.Errorf("non-concentrate product %q leaked through the category filter", p.Product.Name)
		}
	}
}

func TestRecommendPaginationConsistency(t *testing.T) {
	profiles := []float64{0.8, 0.75, 0.7, 0.6, 0.5, 0.4}
	catalog := make([]domain.ProductWithVariant, 0, len(profiles))
	for i, v := range profiles {
		catalog = append(catalog, makeItem(uint64(i+1), "Strain", domain.CategoryFlower, domain.StrainHybrid,
			domain.TerpeneProfile{"myrcene": v}, 10, true))
	}

	req := func(offset, size int) Request {
		return Request{Query: "relaxed", PageSize: size, Offset: offset}
	}
	e := localEngine()

	first := e.Recommend(context.Background(), catalog, req(0, 2))
	second := e.Recommend(context.Background(), catalog, req(2, 2))
	combined := e.Recommend(context.Background(), catalog, req(0, 4))

	if len(first.Products) != 2 || len(second.Products) != 2 || len(combined.Products) != 4 {
		t.Fatalf("page sizes wrong: %d, %d, %d", len(first.Products), len(second.Products), len(combined.Products))
	}

	got := append(append([]domain.ProductWithVariant{}, first.Products...), second.Products...)
	for i := range combined.Products {
		if got[i].Product.ID != combined.Products[i].Product.ID {
			t.Fatalf("paged union diverges at %d: %d vs %d", i, got[i].Product.ID, combined.Products[i].Product.ID)
		}
	}

	seen := map[uint64]bool{}
	for _, p := range got {
		if seen[p.Product.ID] {
			t.Fatalf("product %d appears on both pages", p.Product.ID)
		}
		seen[p.Product.ID] = true
	}

	if first.TotalAvailable != len(catalog) || second.TotalAvailable != len(catalog) {
		t.Errorf("TotalAvailable should report all candidates: %d, %d", first.TotalAvailable, second.TotalAvailable)
	}
}

func TestRecommendOffsetPastEnd(t *testing.T) {
	catalog := []domain.ProductWithVariant{
		makeItem(1, "Only One", domain.CategoryFlower, domain.StrainHybrid, domain.TerpeneProfile{"myrcene": 0.8}, 10, true),
	}

	res := localEngine().Recommend(context.Background(), catalog, Request{Query: "relaxed", PageSize: 5, Offset: 10})

	if len(res.Products) != 0 {
		t.Errorf("offset past end should yield empty page, got %d", len(res.Products))
	}
	if res.TotalAvailable != 1 {
		t.Errorf("TotalAvailable = %d, want 1", res.TotalAvailable)
	}
}

// ---- AI path ----

func aiCatalog() []domain.ProductWithVariant {
	return []domain.ProductWithVariant{
		makeItem(1, "Blue Dream", domain.CategoryFlower, domain.StrainHybrid, domain.TerpeneProfile{"myrcene": 0.6}, 10, true),
		makeItem(2, "Durban Poison", domain.CategoryFlower, domain.StrainSativa, domain.TerpeneProfile{"myrcene": 0.6}, 10, true),
	}
}

func TestRecommendAIBoostReorders(t *testing.T) {
	rec := &fakeRecommender{resp: &domain.AIRecommendationResponse{
		Recommendations: []domain.AIRecommendation{
			{Confidence: 0.9, IdealProfile: domain.AIIdealProfile{StrainType: domain.StrainSativa}},
		},
		PersonalizedMessage: "Picked for your afternoon",
		ContextFactors:      []string{"daytime"},
	}}

	e := NewEngine(NewVibeParser(DefaultVibeMappings()), rec, nil)
	res := e.Recommend(context.Background(), aiCatalog(), Request{Query: "relaxed", PageSize: 10})

	if !res.AIPowered {
		t.Fatal("expected AI-powered result")
	}
	if res.Products[0].Product.ID != 2 {
		t.Errorf("sativa boost should rank Durban Poison first, got %d", res.Products[0].Product.ID)
	}
	if res.PersonalizedMessage != "Picked for your afternoon" {
		t.Errorf("first page should carry the personalized message, got %q", res.PersonalizedMessage)
	}
	if len(res.ContextFactors) != 1 {
		t.Errorf("first page should carry context factors, got %v", res.ContextFactors)
	}
}

func TestRecommendNarrativeFirstPageOnly(t *testing.T) {
	rec := &fakeRecommender{resp: &domain.AIRecommendationResponse{
		Recommendations:     []domain.AIRecommendation{{Confidence: 0.5}},
		PersonalizedMessage: "hello",
		ContextFactors:      []string{"evening"},
	}}

	e := NewEngine(NewVibeParser(DefaultVibeMappings()), rec, nil)
	res := e.Recommend(context.Background(), aiCatalog(), Request{Query: "relaxed", PageSize: 1, Offset: 1})

	if !res.AIPowered {
		t.Fatal("expected AI-powered result")
	}
	if res.PersonalizedMessage != "" || res.ContextFactors != nil {
		t.Errorf("narrative content leaked onto page 2: %q %v", res.PersonalizedMessage, res.ContextFactors)
	}
}

func TestRecommendAIErrorFallsBack(t *testing.T) {
	rec := &fakeRecommender{err: errors.New("upstream timeout")}

	e := NewEngine(NewVibeParser(DefaultVibeMappings()), rec, nil)
	res := e.Recommend(context.Background(), aiCatalog(), Request{Query: "relaxed", PageSize: 10})

	if res.AIPowered {
		t.Error("failed AI call must not report AI powered")
	}
	if len(res.Products) != 2 {
		t.Errorf("local fallback should still rank the catalog, got %d products", len(res.Products))
	}
}

type panickingRecommender struct{}

func (panickingRecommender) Recommend(ctx context.Context, query string) (*domain.AIRecommendationResponse, error) {
	panic("nil map write in scoring adapter")
}

func TestRecommendRecoversFromPanic(t *testing.T) {
	e := NewEngine(NewVibeParser(DefaultVibeMappings()), panickingRecommender{}, nil)

	res := e.Recommend(context.Background(), aiCatalog(), Request{Query: "relaxed", PageSize: 10})

	if res.AIPowered {
		t.Error("recovered result must not report AI powered")
	}
	if res.Products == nil {
		t.Fatal("recovered result must carry a non-nil product page")
	}
	if len(res.Products) != 2 {
		t.Errorf("recovered result should rank locally, got %d products", len(res.Products))
	}
	if len(res.Effects) == 0 {
		t.Error("recovered result should keep the parsed effects")
	}
}

func TestRecommendAIEmptyFallsBack(t *testing.T) {
	rec := &fakeRecommender{resp: &domain.AIRecommendationResponse{}}

	e := NewEngine(NewVibeParser(DefaultVibeMappings()), rec, nil)
	res := e.Recommend(context.Background(), aiCatalog(), Request{Query: "relaxed", PageSize: 10})

	if res.AIPowered {
		t.Error("empty AI response must not report AI powered")
	}
	if len(res.Products) != 2 {
		t.Errorf("got %d products, want 2", len(res.Products))
	}
}

func TestRecommendAIEffectsOverrideParsed(t *testing.T) {
	rec := &fakeRecommender{resp: &domain.AIRecommendationResponse{
		Recommendations: []domain.AIRecommendation{{Confidence: 0.5}},
		Effects:         []string{"Tailored Calm"},
	}}

	e := NewEngine(NewVibeParser(DefaultVibeMappings()), rec, nil)
	res := e.Recommend(context.Background(), aiCatalog(), Request{Query: "relaxed", PageSize: 10})

	if len(res.Effects) != 1 || res.Effects[0] != "Tailored Calm" {
		t.Errorf("effects = %v, want AI effects", res.Effects)
	}
}

func TestAIBoostCap(t *testing.T) {
	resp := &domain.AIRecommendationResponse{
		Effects: []string{"dream"},
		Recommendations: []domain.AIRecommendation{
			{IdealProfile: domain.AIIdealProfile{StrainType: domain.StrainHybrid, PreferredCategory: domain.CategoryFlower, DominantTerpenes: []string{"blue"}}},
			{IdealProfile: domain.AIIdealProfile{StrainType: domain.StrainHybrid, PreferredCategory: domain.CategoryFlower}},
			{IdealProfile: domain.AIIdealProfile{StrainType: domain.StrainHybrid}},
		},
	}
	p := domain.Product{ID: 1, Name: "Blue Dream", Category: domain.CategoryFlower, StrainType: domain.StrainHybrid}

	if got := aiBoost(p, resp); got != aiBoostCap {
		t.Errorf("aiBoost = %v, want capped at %v", got, aiBoostCap)
	}
}

// ---- search logging ----

func TestRecommendLogsSearch(t *testing.T) {
	sink := newFakeSearchLogger()
	e := NewEngine(NewVibeParser(DefaultVibeMappings()), nil, sink)

	e.Recommend(context.Background(), aiCatalog(), Request{
		Query:          "relaxed",
		UserType:       domain.UserTypeKiosk,
		PageSize:       10,
		OrganizationID: "4e3f2a39-9f1e-4a5b-8a21-02f1cb1d6d20",
	})

	select {
	case entry := <-sink.entries:
		if entry.CallerRole != "customer" {
			t.Errorf("kiosk searches log as customer, got %q", entry.CallerRole)
		}
		if entry.QueryText != "relaxed" {
			t.Errorf("query text = %q", entry.QueryText)
		}
		if len(entry.ProductIDs) != 2 {
			t.Errorf("product ids = %v", entry.ProductIDs)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("search log was never written")
	}
}

func TestRecommendSkipsLoggingOnLaterPages(t *testing.T) {
	sink := newFakeSearchLogger()
	e := NewEngine(NewVibeParser(DefaultVibeMappings()), nil, sink)

	e.Recommend(context.Background(), aiCatalog(), Request{
		Query:          "relaxed",
		UserType:       domain.UserTypeStaff,
		PageSize:       1,
		Offset:         1,
		OrganizationID: "4e3f2a39-9f1e-4a5b-8a21-02f1cb1d6d20",
	})

	select {
	case <-sink.entries:
		t.Fatal("later pages must not be logged")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestRecommendLoggerErrorIgnored(t *testing.T) {
	sink := newFakeSearchLogger()
	sink.err = errors.New("db down")
	e := NewEngine(NewVibeParser(DefaultVibeMappings()), nil, sink)

	res := e.Recommend(context.Background(), aiCatalog(), Request{
		Query:          "relaxed",
		UserType:       domain.UserTypeKiosk,
		PageSize:       10,
		OrganizationID: "4e3f2a39-9f1e-4a5b-8a21-02f1cb1d6d20",
	})

	if len(res.Products) == 0 {
		t.Error("logger failure must not affect the recommendation")
	}
	<-sink.entries
}
