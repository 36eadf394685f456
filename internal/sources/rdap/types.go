package rdap

import (
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// rdapResponse representa la respuesta de RDAP (solo los campos usados)
type rdapResponse struct {
	ObjectClassName string `json:"objectClassName"`
	LDHName         string `json:"ldhName"`

	// Entities (registrar, contactos)
	Entities []rdapEntity `json:"entities"`

	// Events (registration, last changed, expiration)
	Events []rdapEvent `json:"events"`
}

// rdapEntity representa una entidad (registrar, contacto)
type rdapEntity struct {
	Roles []string `json:"roles"` // registrar, registrant, admin, tech, billing

	// Contact info (VCard)
	VCardArray []interface{} `json:"vcardArray"`
}

// rdapEvent representa un evento del dominio
type rdapEvent struct {
	EventAction string       `json:"eventAction"`
	EventDate   flexibleDate `json:"eventDate"`
}

// flexibleDate acepta eventDate como string, lista de strings o null.
// Algunos servidores devuelven varias fechas; se toma la primera.
type flexibleDate struct {
	value string
}

// UnmarshalJSON implements custom unmarshaling to handle multiple types.
func (fd *flexibleDate) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		fd.value = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		fd.value = strings.TrimSpace(s)
		return nil
	}

	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil {
		fd.value = ""
		if len(arr) > 0 {
			fd.value = strings.TrimSpace(arr[0])
		}
		return nil
	}

	// Cualquier otro tipo se conserva en crudo; Time() lo rechazará
	fd.value = string(data)
	return nil
}

// String returns the raw value.
func (fd flexibleDate) String() string {
	return fd.value
}

// IsEmpty returns true if no date was sent.
func (fd flexibleDate) IsEmpty() bool {
	return fd.value == ""
}

// dateLayouts en orden de preferencia.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Time parsea la fecha con el primer layout que encaje, en UTC.
func (fd flexibleDate) Time() (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, fd.value); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// extractVCardField extrae un campo del VCard de una entidad.
func extractVCardField(vcardArray []interface{}, fieldName string) string {
	if len(vcardArray) < 2 {
		return ""
	}

	// VCard format: ["vcard", [["version", {}, "text", "4.0"], ["fn", {}, "text", "Example Registrar"], ...]]
	vcard, ok := vcardArray[1].([]interface{})
	if !ok {
		return ""
	}

	for _, item := range vcard {
		field, ok := item.([]interface{})
		if !ok || len(field) < 4 {
			continue
		}

		name, ok := field[0].(string)
		if !ok || !strings.EqualFold(name, fieldName) {
			continue
		}

		// Value is at index 3
		if value, ok := field[3].(string); ok {
			return value
		}
	}

	return ""
}

// hasRole checks if entity has a specific role
func hasRole(roles []string, role string) bool {
	for _, r := range roles {
		if strings.EqualFold(r, role) {
			return true
		}
	}
	return false
}
