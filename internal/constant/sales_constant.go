package constant

const (
	MessageRoleUser      = "user"
	MessageRoleAssistant = "assistant"
	MessageRoleSystem    = "system"

	// Knowledge snippet categories with special handling. Category is
	// free-form; these are the ones the aggregator and synthesizer select on.
	KnowledgeCategorySales      = "sales"
	KnowledgeCategoryResearch   = "research"
	KnowledgeCategoryGeneral    = "general"
	KnowledgeCategoryObjections = "objections"
	KnowledgeCategoryGreetings  = "greetings"
	KnowledgeCategoryProducts   = "products"

	// Aggregation caps. The comment-reply path uses the smaller cap to keep
	// latency down.
	KnowledgeLimitDefault = 10
	KnowledgeLimitComment = 5

	// Appended to a stored assistant message when that turn sent images.
	// Later turns scan history for it to enforce the one-burst image policy.
	ImageSentMarker = " [ЗУРАГ ИЛГЭЭСЭН]"

	// Returned to the customer when the model output cannot be parsed.
	FallbackReply = "Уучлаарай, түр алдаа гарлаа."

	// Default reply on the webhook path when the tenant has no research
	// profile yet.
	UntrainedWebhookReply = "Сайн байна уу! Манай хуудастай холбогдсонд баярлалаа. Удахгүй тантай холбогдох болно. 🙏"

	// Appended to a comment reply when the answer ran long, inviting the
	// commenter into Messenger.
	MessengerInviteSuffix = "\n\n💬 Дэлгэрэнгүй мэдээлэл авахыг хүсвэл Messenger-ээр бичээрэй!"

	// Max products whose images one turn may attach.
	MaxImageProductsPerTurn = 3

	// Max image sends on the webhook delivery path.
	MaxWebhookImageSends = 3

	// Stored messages required before engagement alone lifts a cold lead to warm.
	EngagementWarmThreshold = 3

	MaxProductImages = 10
)
