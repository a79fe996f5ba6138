package httpdto

// RecommendationRequest is used for POST /api/recommendation
type RecommendationRequest struct {
	Question string `json:"question"`
}

type RecommendationResponse struct {
	Recommendation string `json:"recommendation"`
}
