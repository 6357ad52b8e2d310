package constant

// Logger module tags.
const (
	ModuleSalesAgent   = "sales_agent"
	ModuleResearch     = "research"
	ModuleKnowledge    = "knowledge"
	ModuleOrder        = "order"
	ModuleConversation = "conversation"
	ModuleWebhook      = "webhook"
	ModuleCoach        = "coach"
	ModuleBootstrap    = "bootstrap"
)

// EngagementTopicName is the in-process bus topic for stored customer turns.
const EngagementTopicName = "CUSTOMER_ENGAGEMENT"
