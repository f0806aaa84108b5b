package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"boxfactory/internal/core/entity"
	"boxfactory/internal/core/id"
)

type sampleLine struct {
	Qty float64 `json:"qty"`
}

type sampleDoc struct {
	entity.Document
	Number string       `db:"number" json:"number"`
	Lines  []sampleLine `db:"lines" json:"lines"`
	cache  string
	Skip   string `db:"-" json:"skip"`
}

func TestExtractDBColumns_Embedded(t *testing.T) {
	cols := ExtractDBColumns[sampleDoc]()

	assert.Equal(t, []string{
		"id", "version", "created_at", "updated_at",
		"client_id", "client_name",
		"notes",
		"number", "lines",
	}, cols)
}

func TestExtractDBColumns_Pointer(t *testing.T) {
	assert.Equal(t, ExtractDBColumns[sampleDoc](), ExtractDBColumns[*sampleDoc]())
}

func TestStructToMap(t *testing.T) {
	now := time.Now().UTC()
	docID := id.New()
	clientID := id.New()
	doc := &sampleDoc{
		Document: entity.Document{
			BaseEntity:  entity.BaseEntity{ID: docID, Version: 3, CreatedAt: now},
			ClientAware: entity.ClientAware{ClientID: clientID, ClientName: "Acme"},
			Notes:       "rush",
		},
		Number: "INV-1",
		Lines:  []sampleLine{{Qty: 2}},
		cache:  "ignored",
		Skip:   "ignored",
	}

	m := StructToMap(doc)

	assert.Equal(t, docID, m["id"])
	assert.Equal(t, 3, m["version"])
	assert.Equal(t, now, m["created_at"])
	assert.Equal(t, clientID, m["client_id"])
	assert.Equal(t, "Acme", m["client_name"])
	assert.Equal(t, "rush", m["notes"])
	assert.Equal(t, "INV-1", m["number"])
	assert.Equal(t, []sampleLine{{Qty: 2}}, m["lines"])
	assert.NotContains(t, m, "-")
	assert.Len(t, m, 9)
}

func TestStructToMap_NilPointer(t *testing.T) {
	var doc *sampleDoc
	assert.Nil(t, StructToMap(doc))
}

func TestPick(t *testing.T) {
	data := map[string]any{"id": 1, "name": "a", "extra": true}
	assert.Equal(t, map[string]any{"name": "a"}, Pick(data, []string{"id", "name", "missing"}, "id"))
}

func TestDegraded_Sticky(t *testing.T) {
	MarkDegraded()
	MarkDegraded()
	assert.True(t, Degraded())
}

func TestAPIFields(t *testing.T) {
	fields := APIFields[sampleDoc]()

	assert.Equal(t, "created_at", fields["createdAt"])
	assert.Equal(t, "client_id", fields["clientId"])
	assert.Equal(t, "number", fields["number"])
	assert.NotContains(t, fields, "lines")
	assert.NotContains(t, fields, "skip")
}
