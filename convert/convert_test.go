package convert

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/oscalgen/budget"
	"github.com/c360studio/oscalgen/llm"
	"github.com/c360studio/oscalgen/llm/testutil"
	"github.com/c360studio/oscalgen/oscal"
)

const validSSPJSON = `{
  "system-security-plan": {
    "uuid": "f47ac10b-58cc-4372-a567-0e02b2c3d479",
    "metadata": {
      "title": "Sample SSP",
      "last-modified": "2026-08-26T00:00:00Z",
      "version": "1.0.0",
      "oscal-version": "1.2.0"
    },
    "import-profile": {"href": "https://example.com/moderate-profile.json"},
    "system-characteristics": {
      "system-ids": [{"identifier-type": "https://fedramp.gov", "id": "F00000001"}],
      "system-name": "Sample System",
      "description": "A sample system.",
      "security-sensitivity-level": "moderate",
      "system-information": {"information-types": [{"title": "General operations data"}]},
      "security-impact-level": {
        "security-objective-confidentiality": "moderate",
        "security-objective-integrity": "moderate",
        "security-objective-availability": "moderate"
      },
      "status": {"state": "operational"},
      "authorization-boundary": {"description": "All platform services."}
    },
    "system-implementation": {
      "components": [{
        "uuid": "6ba7b810-9dad-11d1-80b4-00c04fd430c8",
        "type": "this-system",
        "title": "Sample System",
        "description": "The primary system.",
        "status": {"state": "operational"}
      }]
    },
    "control-implementation": {
      "description": "Implemented controls.",
      "implemented-requirements": [{
        "uuid": "6ba7b811-9dad-11d1-80b4-00c04fd430c8",
        "control-id": "ac-2"
      }]
    }
  }
}`

const validMappingJSON = `{
  "mapping-collection": {
    "uuid": "f47ac10b-58cc-4372-a567-0e02b2c3d479",
    "metadata": {
      "title": "NIST 800-53 to ISO 27001",
      "last-modified": "2026-08-26T00:00:00Z",
      "version": "1.0.0",
      "oscal-version": "1.2.0"
    },
    "mappings": [{
      "uuid": "6ba7b810-9dad-11d1-80b4-00c04fd430c8",
      "source-resource": {"type": "catalog", "title": "NIST 800-53"},
      "target-resource": {"type": "catalog", "title": "ISO 27001"},
      "maps": [{
        "uuid": "6ba7b811-9dad-11d1-80b4-00c04fd430c8",
        "source": {"type": "control", "id-ref": "ac-2"},
        "target": {"type": "control", "id-ref": "a.5.15"},
        "relationship": {"type": "equivalent-to"}
      }]
    }]
  }
}`

const layoutExportJSON = `{
  "filename": "sample-ssp.docx",
  "tables": [
    {"cells": [
      {"text": "AC-2 Control Summary Information"},
      {"text": "Responsible Role: ISSO"},
      {"text": "Implementation Status (check all that apply): Implemented"},
      {"text": "Control Origination (check all that apply): Service Provider System Specific"}
    ]},
    {"cells": [
      {"text": "AC-2 What is the solution and how is it implemented?"},
      {"text": "Part a: Account types are identified and documented."}
    ]}
  ]
}`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func oracleReturning(content string) *testutil.MockLLMClient {
	return &testutil.MockLLMClient{
		Responses: []*llm.Response{{Content: content, Model: "test-model"}},
	}
}

func TestSSPFromTables(t *testing.T) {
	input := writeTemp(t, "sample-ssp.json", layoutExportJSON)
	mock := oracleReturning("Here is the artifact:\n" + validSSPJSON)

	c := New(mock)
	result, err := c.SSP(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Controls)
	assert.Empty(t, result.Warnings)
	assert.True(t, strings.HasSuffix(string(result.Artifact), "\n"))

	env, err := oscal.ValidateSSP(result.Artifact)
	require.NoError(t, err)
	assert.Equal(t, "Sample SSP", env.SystemSecurityPlan.Metadata.Title)
}

func TestSSPFromMarkdown(t *testing.T) {
	input := writeTemp(t, "sample-ssp.md", "# Sample SSP\n\nAC-2: accounts are managed.")
	mock := oracleReturning(validSSPJSON)

	c := New(mock)
	result, err := c.SSP(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, 0, result.Controls)
	assert.Empty(t, result.Warnings)
	assert.Equal(t, 1, mock.GetCallCount())
}

func TestSSPTableFallbackWarning(t *testing.T) {
	// A layout export whose tables carry no control structure at all.
	input := writeTemp(t, "sample-ssp.json", `{
		"markdown": "# SSP\n\nNarrative only.",
		"tables": [{"cells": [{"text": "Revision History"}, {"text": "1.0"}]}]
	}`)
	mock := oracleReturning(validSSPJSON)

	c := New(mock)
	result, err := c.SSP(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, 0, result.Controls)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "no controls extracted")
}

func TestSSPTruncationWarning(t *testing.T) {
	long := strings.Repeat("control narrative text ", 100)
	input := writeTemp(t, "big-ssp.md", long)
	mock := oracleReturning(validSSPJSON)

	c := New(mock, WithBudgeter(budget.MustNew(budget.Config{MaxChars: 1024})))
	result, err := c.SSP(context.Background(), input)
	require.NoError(t, err)

	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "truncating")
}

func TestSSPNoStructuredOutput(t *testing.T) {
	input := writeTemp(t, "sample-ssp.md", "# SSP")
	mock := oracleReturning("I could not produce the requested document.")

	c := New(mock)
	_, err := c.SSP(context.Background(), input)
	require.Error(t, err)
	assert.ErrorIs(t, err, oscal.ErrNoStructuredOutput)
}

func TestSSPRejectsInvalidPayload(t *testing.T) {
	input := writeTemp(t, "sample-ssp.md", "# SSP")
	mock := oracleReturning(`{"system-security-plan": {"uuid": "not-a-uuid"}}`)

	c := New(mock)
	result, err := c.SSP(context.Background(), input)
	require.Error(t, err)
	assert.Nil(t, result, "invalid payload must not yield a partial artifact")
	assert.Contains(t, err.Error(), "failed schema validation")
}

func TestMappingConversion(t *testing.T) {
	input := writeTemp(t, "framework-mappings.json", `{
		"mappings": [{
			"source": "NIST 800-53",
			"target": "ISO 27001",
			"mappings": [{"source_control_id": "ac-2", "target_control_id": "a.5.15"}]
		}]
	}`)
	mock := oracleReturning(validMappingJSON)

	c := New(mock)
	result, err := c.Mapping(context.Background(), input)
	require.NoError(t, err)

	env, err := oscal.ValidateMapping(result.Artifact)
	require.NoError(t, err)
	assert.Len(t, env.MappingCollection.Mappings, 1)
}

func TestMappingRejectsEmptyFile(t *testing.T) {
	input := writeTemp(t, "framework-mappings.json", `{"mappings": []}`)

	c := New(oracleReturning(validMappingJSON))
	_, err := c.Mapping(context.Background(), input)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no mapping groups")
}

func TestMappingNoStructuredOutput(t *testing.T) {
	input := writeTemp(t, "framework-mappings.json", `{
		"mappings": [{"source": "A", "target": "B",
			"mappings": [{"source_control_id": "x-1", "target_control_id": "y-1"}]}]
	}`)
	mock := oracleReturning("no json here")

	c := New(mock)
	_, err := c.Mapping(context.Background(), input)
	assert.ErrorIs(t, err, oscal.ErrNoStructuredOutput)
}

func TestDefaultOutputPath(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"sample-ssp.md", "sample-ssp-oscal.json"},
		{"docs/sample-ssp.docx.json", "docs/sample-ssp.docx-oscal.json"},
		{"framework-mappings.json", "framework-mappings-oscal.json"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DefaultOutputPath(tt.input))
	}
}

func TestWriteArtifact(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out-oscal.json")
	require.NoError(t, WriteArtifact([]byte("{}\n"), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{}\n", string(data))
}
