package docs

import (
	"encoding/json"
	"regexp"
	"testing"

	"github.com/swaggo/swag"
)

func TestSwaggerDocument(t *testing.T) {
	raw, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	if err != nil {
		t.Fatalf("read doc: %v", err)
	}

	var doc struct {
		Paths       map[string]any `json:"paths"`
		Definitions map[string]any `json:"definitions"`
	}
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		t.Fatalf("document is not valid json: %v", err)
	}
	if _, ok := doc.Paths["/v1/parcels"]; !ok {
		t.Error("expected /v1/parcels in paths")
	}
	if _, ok := doc.Definitions["handler.ErrorResponse"]; !ok {
		t.Error("expected the handler.ErrorResponse envelope to be documented")
	}

	refs := regexp.MustCompile(`"#/definitions/([^"]+)"`).FindAllStringSubmatch(raw, -1)
	if len(refs) == 0 {
		t.Fatal("expected schema references")
	}
	for _, ref := range refs {
		if _, ok := doc.Definitions[ref[1]]; !ok {
			t.Errorf("dangling reference to %s", ref[1])
		}
	}
}
