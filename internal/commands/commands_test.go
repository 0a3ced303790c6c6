package commands_test

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/modelkit/internal/commands"
	"github.com/dmitrymomot/modelkit/pkg/config"
	"github.com/dmitrymomot/modelkit/pkg/i18n"
	"github.com/dmitrymomot/modelkit/pkg/serializer"
	"github.com/dmitrymomot/modelkit/pkg/validator"
)

const validOrder = `{"id": 1, "usuario_id": 2, "fecha_creacion": "2024-01-02T03:04:05Z",
 "items": [{"producto_id": 10, "cantidad": 2, "precio_unitario": 9.994}], "estado": "enviada"}`

func execute(t *testing.T, vars map[string]string, stdin string, args ...string) (string, error) {
	t.Helper()

	cfg, err := config.ParseFrom(vars)
	require.NoError(t, err)
	translator, err := i18n.NewBuiltin(context.Background())
	require.NoError(t, err)

	cmd := commands.NewRootCmd(&commands.App{Config: cfg, Translator: translator})
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(io.Discard)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err = cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func issues(t *testing.T, out string) []validator.Issue {
	t.Helper()
	var list []validator.Issue
	scanner := bufio.NewScanner(strings.NewReader(out))
	for scanner.Scan() {
		var issue validator.Issue
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &issue))
		list = append(list, issue)
	}
	return list
}

func TestValidate(t *testing.T) {
	t.Parallel()

	t.Run("writes the canonical record", func(t *testing.T) {
		out, err := execute(t, nil, validOrder, "validate", "--schema", "testdata/orden.yaml")
		require.NoError(t, err)
		assert.Equal(t,
			`{"id":1,"usuario_id":2,"items":[{"producto_id":10,"cantidad":2,"precio_unitario":9.99}],"fecha_creacion":"2024-01-02T03:04:05Z","estado":"enviada","notas":null}`+"\n",
			out)
	})

	t.Run("indents on request", func(t *testing.T) {
		out, err := execute(t, nil, validOrder, "validate", "-s", "testdata/orden.yaml", "--indent")
		require.NoError(t, err)
		assert.Contains(t, out, "\n  \"id\": 1,\n")
	})

	t.Run("reports every issue in the requested language", func(t *testing.T) {
		out, err := execute(t, nil, "", "validate",
			"--schema", "testdata/orden.yaml",
			"--input", "testdata/pedido_invalido.yaml",
			"--lang", "es",
		)

		var exitErr *commands.ExitError
		require.ErrorAs(t, err, &exitErr)
		assert.Equal(t, commands.ExitCodeInvalid, exitErr.Code)
		assert.ErrorIs(t, err, validator.ErrValidationFailed)

		list := issues(t, out)
		require.Len(t, list, 2)
		assert.Equal(t, "usuario_id", list[0].Field)
		assert.Equal(t, validator.MissingField, list[0].Kind)
		assert.Equal(t, "el campo es obligatorio", list[0].Message)
		assert.Equal(t, "items[0].cantidad", list[1].Field)
		assert.Equal(t, "debe ser mayor que 0", list[1].Message)
	})

	t.Run("strict coercion rejects numeric strings", func(t *testing.T) {
		input := strings.Replace(validOrder, `"id": 1`, `"id": "1"`, 1)

		_, err := execute(t, nil, input, "validate", "-s", "testdata/orden.yaml")
		require.NoError(t, err)

		out, err := execute(t, nil, input, "validate", "-s", "testdata/orden.yaml", "--coercion", "strict")
		require.Error(t, err)
		list := issues(t, out)
		require.Len(t, list, 1)
		assert.Equal(t, validator.TypeMismatch, list[0].Kind)
	})

	t.Run("limits the input size", func(t *testing.T) {
		_, err := execute(t, map[string]string{"MODELKIT_MAX_INPUT_BYTES": "16"}, validOrder,
			"validate", "-s", "testdata/orden.yaml")
		assert.ErrorIs(t, err, serializer.ErrInputTooLarge)
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		_, err := execute(t, nil, `{"id": `, "validate", "-s", "testdata/orden.yaml")
		assert.ErrorIs(t, err, serializer.ErrInvalidJSON)

		_, err = execute(t, nil, "- a\n- b\n", "validate", "-s", "testdata/orden.yaml")
		assert.ErrorIs(t, err, commands.ErrInvalidInput)

		_, err = execute(t, nil, "  \n", "validate", "-s", "testdata/orden.yaml")
		assert.ErrorIs(t, err, commands.ErrEmptyInput)
	})

	t.Run("requires a schema", func(t *testing.T) {
		_, err := execute(t, nil, validOrder, "validate")
		assert.Error(t, err)

		_, err = execute(t, nil, validOrder, "validate", "-s", "testdata/missing.yaml")
		assert.Error(t, err)
	})

	t.Run("rejects unknown coercion", func(t *testing.T) {
		_, err := execute(t, nil, validOrder, "validate", "-s", "testdata/orden.yaml", "--coercion", "loose")
		assert.ErrorIs(t, err, validator.ErrUnknownCoercion)
	})
}

func TestDescribe(t *testing.T) {
	t.Parallel()

	out, err := execute(t, nil, "", "describe", "--schema", "testdata/orden.yaml")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "schema orden\n"))
	assert.Contains(t, out, "\nschema item_orden\n")
	assert.Less(t, strings.Index(out, "schema orden"), strings.Index(out, "schema item_orden"))

	lines := strings.Split(out, "\n")
	assert.Regexp(t, `^FIELD\s+TYPE\s+REQUIRED\s+DEFAULT\s+CONSTRAINTS\s+TRANSFORMS$`, lines[1])
	assert.Regexp(t, `^items\s+list<object:item_orden>\s+true\s+-\s+min_len=1\s+-$`, lines[4])
	assert.Regexp(t, `^fecha_creacion\s+timestamp\s+false\s+<generated>\s+-\s+-$`, lines[5])
	assert.Regexp(t, `^estado\s+string\s+false\s+pendiente\s+one_of=\S+\s+trim,lower$`, lines[6])
	assert.Regexp(t, `^notas\s+optional<string>\s+false\s+null\s+-\s+-$`, lines[7])
	assert.Regexp(t, `^precio_unitario\s+float\s+true\s+-\s+gt=0\s+round:2$`, lines[13])
}

func TestJSONSchema(t *testing.T) {
	t.Parallel()

	out, err := execute(t, nil, "", "jsonschema", "--schema", "testdata/orden.yaml")
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "orden", doc["title"])
	defs, ok := doc["$defs"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, defs, "item_orden")
}

func TestRunIDExtractor(t *testing.T) {
	t.Parallel()
	extract := commands.RunIDExtractor()

	_, ok := extract(context.Background())
	assert.False(t, ok)

	attr, ok := extract(commands.WithRunID(context.Background(), "abc"))
	require.True(t, ok)
	assert.Equal(t, "run_id", attr.Key)
	assert.Equal(t, "abc", attr.Value.String())
}
