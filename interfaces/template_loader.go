package interfaces

// TemplateLoader loads a base configuration document for a template category
// (domain.TemplateDefault or an instance type). Templates are read on every call.
//
//go:generate moq -stub -out mock/template_loader.go -pkg mock . TemplateLoader
type TemplateLoader interface {
	// LoadTemplate returns the decoded document.
	// Returns entity_not_found when the category has no template and internal_server_error when it cannot be read or parsed.
	LoadTemplate(category string) (map[string]any, error)
}
