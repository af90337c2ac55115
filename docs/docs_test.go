package docs

import (
	"strings"
	"testing"

	"github.com/swaggo/swag"
)

func TestSwaggerInfoBasic(t *testing.T) {
	if SwaggerInfo == nil {
		t.Fatalf("SwaggerInfo unexpectedly nil")
	}
	if SwaggerInfo.Title == "" {
		t.Fatalf("expected non-empty Title in SwaggerInfo")
	}
	if !strings.Contains(SwaggerInfo.SwaggerTemplate, "paths") {
		t.Fatalf("expected SwaggerTemplate to contain 'paths'")
	}
}

func TestSwaggerDocumentsCoreRoutes(t *testing.T) {
	doc, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	if err != nil {
		t.Fatalf("read doc: %v", err)
	}
	for _, route := range []string{
		"/signup",
		"/signin",
		"/appointment-requests/{id}",
		"/prescriptions",
		"/prescriptions/last-case-number",
		"/prescriptions/patient-case",
		"/users/{id}",
	} {
		if !strings.Contains(doc, `"`+route+`"`) {
			t.Errorf("expected %s in swagger doc", route)
		}
	}
}
