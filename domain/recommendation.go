package domain

// UserType of the caller requesting recommendations.
const (
	UserTypeKiosk = "kiosk"
	UserTypeStaff = "staff"
)

// RecommendationResult is what the engine returns for one page of a vibe
// search. PersonalizedMessage and ContextFactors are narrative content and
// only populated on the first page of an AI-powered result.
type RecommendationResult struct {
	Products            []ProductWithVariant `json:"products"`
	Effects             []string             `json:"effects"`
	AIPowered           bool                 `json:"is_ai_powered"`
	PersonalizedMessage string               `json:"personalized_message,omitempty"`
	ContextFactors      []string             `json:"context_factors,omitempty"`
	TotalAvailable      int                  `json:"total_available"`
}

// AIIdealProfile describes what the external recommender thinks the customer
// should be matched against.
type AIIdealProfile struct {
	StrainType        string   `json:"strain_type,omitempty"`
	PreferredCategory string   `json:"preferred_category,omitempty"`
	DominantTerpenes  []string `json:"dominant_terpenes,omitempty"`
}

// AIRecommendation is a single candidate from the external recommender.
type AIRecommendation struct {
	Confidence   float64        `json:"confidence"`
	Reason       string         `json:"reason,omitempty"`
	IdealProfile AIIdealProfile `json:"ideal_profile"`
}

// AIRecommendationResponse is the full payload of the external recommender.
// An empty Recommendations slice means "no AI boost available".
type AIRecommendationResponse struct {
	Recommendations     []AIRecommendation `json:"recommendations"`
	Effects             []string           `json:"effects,omitempty"`
	PersonalizedMessage string             `json:"personalized_message,omitempty"`
	ContextFactors      []string           `json:"context_factors,omitempty"`
}
