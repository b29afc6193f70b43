package dto

type GeneratePersonasRequest struct {
	Count int `query:"count" validate:"min=1,max=50"`
}

// Empty fields are drawn at random.
type ConstrainedPersonaRequest struct {
	Gender      string `json:"gender" validate:"omitempty,oneof=male female"`
	LifeStage   string `json:"life_stage" validate:"omitempty,oneof=college_student young_professional established_professional senior_professional retired"`
	Personality string `json:"personality" validate:"omitempty,oneof=introverted extroverted analytical creative practical empathetic"`
}

type PersonaResponse struct {
	Name              string   `json:"name"`
	Gender            string   `json:"gender"`
	Age               int      `json:"age"`
	Personality       string   `json:"personality"`
	LifeStage         string   `json:"life_stage"`
	LifeStageLabel    string   `json:"life_stage_label"`
	FamilyStatus      string   `json:"family_status"`
	FamilyStatusLabel string   `json:"family_status_label"`
	Context           string   `json:"context"`
	Traits            []string `json:"traits"`
	TopTraits         []string `json:"top_traits"`
}
