package entity

import (
	"time"

	"github.com/google/uuid"
)

type SalesChannelMode string

const (
	SalesChannelWebsite  SalesChannelMode = "website"
	SalesChannelDelivery SalesChannelMode = "delivery"
	SalesChannelBoth     SalesChannelMode = "both"
)

// ResearchProfile is the one current synthesized sales-knowledge document
// for a project. Regeneration replaces the document wholesale.
type ResearchProfile struct {
	Id             uuid.UUID
	ProjectId      uuid.UUID
	Document       ResearchDocument
	LastResearchAt time.Time
	CreatedAt      time.Time
	UpdatedAt      *time.Time
}

// ResearchDocument is the structured output contract of the research
// synthesizer. Every field is mandatory in the model's output; the
// synthesizer rejects documents that do not parse into this shape.
type ResearchDocument struct {
	BusinessSummary      string             `json:"business_summary"`
	ValueProposition     string             `json:"value_proposition"`
	SalesChannel         SalesChannelMode   `json:"sales_channel"`
	IsDigitalProduct     bool               `json:"is_digital_product"`
	PurchaseInstructions string             `json:"purchase_instructions"`
	WebsiteURL           string             `json:"website_url"`
	MarketAnalysis       string             `json:"market_analysis"`
	TargetAudience       string             `json:"target_audience"`
	CustomerPsychology   CustomerPsychology `json:"customer_psychology"`
	CustomerBehavior     string             `json:"customer_behavior"`
	BrandVoice           string             `json:"brand_voice"`
	KeySellingPoints     []string           `json:"key_selling_points"`
	ProductUSPs          []ProductUSP       `json:"product_usps"`
	ProductKnowledge     []ProductKnowledge `json:"product_knowledge"`
	SalesScripts         SalesScripts       `json:"sales_scripts"`
	CommonQuestions      []QuestionAnswer   `json:"common_questions"`
	ObjectionHandling    []ObjectionReply   `json:"objection_handling"`
	UrgencyTactics       []string           `json:"urgency_tactics"`
	SocialProof          string             `json:"social_proof"`
	SalesTips            []string           `json:"sales_tips"`
	GreetingStyle        string             `json:"greeting_style"`
	ToneGuidelines       string             `json:"tone_guidelines"`
	DoNotSay             []string           `json:"do_not_say"`
}

type CustomerPsychology struct {
	PainPoints     []string `json:"pain_points"`
	Desires        []string `json:"desires"`
	Fears          []string `json:"fears"`
	BuyingTriggers []string `json:"buying_triggers"`
}

type ProductUSP struct {
	ProductName string `json:"product_name"`
	USP         string `json:"usp"`
}

type ProductKnowledge struct {
	ProductName string   `json:"product_name"`
	ShortPitch  string   `json:"short_pitch"`
	Benefits    []string `json:"benefits"`
	Features    []string `json:"features"`
	IdealFor    string   `json:"ideal_for"`
	NotFor      string   `json:"not_for"`
}

// SalesScripts holds one ready script per funnel stage.
type SalesScripts struct {
	Opening    string `json:"opening"`
	Qualifying string `json:"qualifying"`
	Presenting string `json:"presenting"`
	Closing    string `json:"closing"`
	FollowUp   string `json:"follow_up"`
}

type QuestionAnswer struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type ObjectionReply struct {
	Objection string `json:"objection"`
	Response  string `json:"response"`
}
