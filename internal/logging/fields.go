package logging

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldArticle is the standardized structured logging key for article slugs.
	FieldArticle = "article"
	// FieldCategory is the standardized structured logging key for category slugs.
	FieldCategory = "category"
	// FieldPlatform is the standardized structured logging key for backlink platform names.
	FieldPlatform = "platform"
	// FieldSessionID is the standardized structured logging key for run session identifiers.
	FieldSessionID = "session_id"
)
