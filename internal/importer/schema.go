package importer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ImportSchema is the top-level structure of a work order import file.
type ImportSchema struct {
	WorkOrders []WorkOrderImport `json:"work_orders" yaml:"work_orders"`
}

// WorkOrderImport defines one work order in the import file. An empty Code
// means a new code is allocated on import.
type WorkOrderImport struct {
	Code                   string       `json:"code,omitempty" yaml:"code,omitempty"`
	Client                 string       `json:"client" yaml:"client"`
	Service                string       `json:"service" yaml:"service"`
	QuotationRef           string       `json:"quotation_ref,omitempty" yaml:"quotation_ref,omitempty"`
	AgreementRef           string       `json:"agreement_ref,omitempty" yaml:"agreement_ref,omitempty"`
	StartDate              string       `json:"start_date" yaml:"start_date"`
	EndDate                string       `json:"end_date,omitempty" yaml:"end_date,omitempty"`
	Value                  Scalar       `json:"value,omitempty" yaml:"value,omitempty"`
	Status                 string       `json:"status,omitempty" yaml:"status,omitempty"`
	BillingCycle           string       `json:"billing_cycle,omitempty" yaml:"billing_cycle,omitempty"`
	BillingRate            string       `json:"billing_rate,omitempty" yaml:"billing_rate,omitempty"`
	InvoiceDueDay          Scalar       `json:"invoice_due_day,omitempty" yaml:"invoice_due_day,omitempty"`
	GSTInclusive           *bool        `json:"gst_inclusive,omitempty" yaml:"gst_inclusive,omitempty"`
	CreateOperationalPosts *bool        `json:"create_operational_posts,omitempty" yaml:"create_operational_posts,omitempty"`
	DocumentURL            string       `json:"document_url,omitempty" yaml:"document_url,omitempty"`
	ClientApproval         string       `json:"client_approval,omitempty" yaml:"client_approval,omitempty"`
	Posts                  []PostImport `json:"posts" yaml:"posts"`
}

// PostImport defines a security post. Codes are always derived on import.
type PostImport struct {
	Name     string        `json:"name" yaml:"name"`
	Type     string        `json:"type,omitempty" yaml:"type,omitempty"`
	Address  string        `json:"address" yaml:"address"`
	Digipin  string        `json:"digipin,omitempty" yaml:"digipin,omitempty"`
	DutyType string        `json:"duty_type,omitempty" yaml:"duty_type,omitempty"`
	Staff    []StaffImport `json:"staff,omitempty" yaml:"staff,omitempty"`
}

// StaffImport defines a staff requirement. Omitting Days schedules every
// day; an explicit empty list schedules none.
type StaffImport struct {
	Role      string   `json:"role" yaml:"role"`
	Count     Scalar   `json:"count,omitempty" yaml:"count,omitempty"`
	Shift     string   `json:"shift" yaml:"shift"`
	StartTime string   `json:"start_time,omitempty" yaml:"start_time,omitempty"`
	EndTime   string   `json:"end_time,omitempty" yaml:"end_time,omitempty"`
	Days      []string `json:"days,omitempty" yaml:"days,omitempty"`
}

// Scalar accepts either a string or a bare number and keeps its text, so
// `count: 5` and `count: "5"` read the same.
type Scalar string

func (s *Scalar) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = Scalar(str)
		return nil
	}
	if string(data) == "null" {
		*s = ""
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", data)
	}
	*s = Scalar(n.String())
	return nil
}

func (s *Scalar) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected string or number", node.Line)
	}
	*s = Scalar(node.Value)
	return nil
}

// LoadImportSchema reads an import file. The format follows the extension:
// .json, .yaml or .yml.
func LoadImportSchema(path string) (*ImportSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var schema ImportSchema
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		if err := json.Unmarshal(data, &schema); err != nil {
			return nil, fmt.Errorf("parsing import file: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &schema); err != nil {
			return nil, fmt.Errorf("parsing import file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported import file extension %q (want .json, .yaml or .yml)", ext)
	}
	return &schema, nil
}
