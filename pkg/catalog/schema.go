package catalog

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/invopop/jsonschema"
)

// reflectSchema builds the payload schema of rec. Required fields and enum
// values come from the validate tags so the schema cannot drift from what
// Upsert enforces.
func reflectSchema(rec any) *jsonschema.Schema {
	r := &jsonschema.Reflector{
		ExpandedStruct:             true,
		DoNotReference:             true,
		RequiredFromJSONSchemaTags: true,
	}
	s := r.Reflect(rec)

	t := reflect.TypeOf(rec)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	required := make([]string, 0)
	for i := 0; i < t.NumField(); i++ {
		fld := t.Field(i)
		name := jsonName(fld)
		if name == "" {
			continue
		}
		for _, rule := range strings.Split(fld.Tag.Get("validate"), ",") {
			switch {
			case rule == "required":
				required = append(required, name)
			case strings.HasPrefix(rule, "oneof="):
				if prop, ok := s.Properties.Get(name); ok {
					for _, v := range strings.Fields(strings.TrimPrefix(rule, "oneof=")) {
						prop.Enum = append(prop.Enum, v)
					}
				}
			case strings.HasPrefix(rule, "len="), strings.HasPrefix(rule, "max="):
				if prop, ok := s.Properties.Get(name); ok {
					n, err := strconv.ParseUint(rule[4:], 10, 64)
					if err != nil {
						continue
					}
					prop.MaxLength = &n
					if rule[:3] == "len" {
						prop.MinLength = &n
					}
				}
			}
		}
	}
	s.Required = required
	return s
}
