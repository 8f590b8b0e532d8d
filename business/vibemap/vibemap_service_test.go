package vibemap

import (
	"context"
	"errors"
	"testing"

	"myTerpMarket/domain"
)

type fakeVibeMappingRepo struct {
	rows       []domain.VibeMapping
	findAllErr error
	created    []domain.VibeMapping
}

func (f *fakeVibeMappingRepo) Create(ctx context.Context, mapping *domain.VibeMapping) error {
	f.created = append(f.created, *mapping)
	return nil
}

func (f *fakeVibeMappingRepo) FindByKeyword(ctx context.Context, keyword string) (domain.VibeMapping, error) {
	for _, row := range f.rows {
		if row.Keyword == keyword {
			return row, nil
		}
	}
	return domain.VibeMapping{}, errors.New("vibe mapping not found")
}

func (f *fakeVibeMappingRepo) FindAll(ctx context.Context) ([]domain.VibeMapping, error) {
	if f.findAllErr != nil {
		return nil, f.findAllErr
	}
	return f.rows, nil
}

func (f *fakeVibeMappingRepo) Update(ctx context.Context, mapping *domain.VibeMapping) error {
	return nil
}

func (f *fakeVibeMappingRepo) Delete(ctx context.Context, id uint64) error {
	return nil
}

func TestBuildParserLayersDBRowsOverDefaults(t *testing.T) {
	repo := &fakeVibeMappingRepo{
		rows: []domain.VibeMapping{
			{
				Keyword: "sleepy",
				Profile: domain.TerpeneProfile{"linalool": 0.9},
				Effects: []string{"House Blend Sleep"},
			},
		},
	}
	svc := NewVibeMapService(repo)

	parser := svc.BuildParser(context.Background())
	profile, effects := parser.Parse("feeling sleepy tonight")

	if profile["linalool"] != 0.9 {
		t.Fatalf("expected DB row to override default sleepy profile, got %v", profile)
	}
	if len(effects) != 1 || effects[0] != "House Blend Sleep" {
		t.Fatalf("expected DB row effects, got %v", effects)
	}
}

func TestBuildParserFallsBackToDefaultsOnDBError(t *testing.T) {
	repo := &fakeVibeMappingRepo{findAllErr: errors.New("connection refused")}
	svc := NewVibeMapService(repo)

	parser := svc.BuildParser(context.Background())
	profile, effects := parser.Parse("help me get relaxed")

	if profile["myrcene"] != 0.8 {
		t.Fatalf("expected default relaxed profile, got %v", profile)
	}
	if len(effects) == 0 {
		t.Fatal("expected default effects")
	}
}

func TestCreateMappingValidation(t *testing.T) {
	repo := &fakeVibeMappingRepo{}
	svc := NewVibeMapService(repo)

	cases := []struct {
		name    string
		mapping domain.VibeMapping
		wantErr string
	}{
		{
			name:    "missing keyword",
			mapping: domain.VibeMapping{Profile: domain.TerpeneProfile{"myrcene": 0.5}, Effects: []string{"Calm"}},
			wantErr: "keyword is required",
		},
		{
			name:    "missing profile",
			mapping: domain.VibeMapping{Keyword: "cozy", Effects: []string{"Calm"}},
			wantErr: "terpene profile is required",
		},
		{
			name:    "missing effects",
			mapping: domain.VibeMapping{Keyword: "cozy", Profile: domain.TerpeneProfile{"myrcene": 0.5}},
			wantErr: "at least one effect label is required",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateMapping(context.Background(), &tc.mapping)
			if err == nil || err.Error() != tc.wantErr {
				t.Fatalf("expected %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestCreateMappingLowercasesKeywordAndRejectsDuplicates(t *testing.T) {
	repo := &fakeVibeMappingRepo{}
	svc := NewVibeMapService(repo)

	created, err := svc.CreateMapping(context.Background(), &domain.VibeMapping{
		Keyword: "  Cozy ",
		Profile: domain.TerpeneProfile{"myrcene": 0.6},
		Effects: []string{"Comfort"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.Keyword != "cozy" {
		t.Fatalf("expected lowercase trimmed keyword, got %q", created.Keyword)
	}

	stored := *created
	stored.ID = 1
	repo.rows = append(repo.rows, stored)

	_, err = svc.CreateMapping(context.Background(), &domain.VibeMapping{
		Keyword: "cozy",
		Profile: domain.TerpeneProfile{"myrcene": 0.6},
		Effects: []string{"Comfort"},
	})
	if err == nil || err.Error() != "keyword already exists" {
		t.Fatalf("expected duplicate keyword error, got %v", err)
	}
}
