package adapters

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"proxyconfig/helpers"
	"proxyconfig/interfaces"
	"proxyconfig/service"

	"gopkg.in/yaml.v3"
)

// TemplatesYAML creates an interfaces.TemplateLoader reading <dir>/<category>.yaml on every call.
// Panics on empty dir.
func TemplatesYAML(dir string) interfaces.TemplateLoader {
	return &templatesYAML{dir: helpers.StrPanic(dir, "adapters.templates_yaml.go: templates dir is required")}
}

type templatesYAML struct {
	dir string
}

func (t *templatesYAML) LoadTemplate(category string) (map[string]any, error) {
	if category == "" || strings.ContainsAny(category, `/\.`) {
		return nil, service.NewBadParameterError(fmt.Sprintf("invalid template category %q", category), nil)
	}
	path := filepath.Join(t.dir, category+".yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, service.NewEntityNotFoundError(fmt.Sprintf("no template for category %q", category), err)
		}
		return nil, service.NewInternalServerError("failed to read template "+path, err)
	}
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, service.NewInternalServerError("failed to parse template "+path, err)
	}
	if doc == nil {
		return nil, service.NewInternalServerError("template "+path+" is empty", nil)
	}
	return doc, nil
}
