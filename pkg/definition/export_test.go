package definition_test

import (
	"bytes"
	"testing"

	"github.com/aretw0/turing/internal/testutils"
	"github.com/aretw0/turing/pkg/definition"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromProgram_RoundTrip(t *testing.T) {
	cfg := domain.DefaultConfig()
	prog := &definition.Program{
		Name:       "copy",
		Config:     cfg,
		Rules:      testutils.CopyRules(cfg),
		Inputs:     [][]string{testutils.CopyInput, {}, {}},
		MaxSteps:   500,
		OutputTape: 1,
	}

	for _, format := range []definition.Format{definition.FormatYAML, definition.FormatJSON} {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, definition.FromProgram(prog).Write(&buf, format))

			doc, err := definition.Parse(buf.Bytes(), format)
			require.NoError(t, err)
			again, err := doc.Compile()
			require.NoError(t, err)

			assert.Equal(t, prog, again)
		})
	}
}

func TestDocument_WriteUnsupported(t *testing.T) {
	err := (&definition.Document{}).Write(&bytes.Buffer{}, definition.Format("xml"))
	assert.Error(t, err)
}
