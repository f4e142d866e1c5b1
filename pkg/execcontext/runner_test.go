//go:build unit

package execcontext_test

import (
	"context"
	"strings"
	"testing"

	"github.com/alexandremahdhaoui/machina/pkg/execcontext"
	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunner(t *testing.T) {
	ctx := context.Background()

	t.Run("Run", func(t *testing.T) {
		t.Run("Success", func(t *testing.T) {
			r := execcontext.NewRunner(execcontext.New(nil, nil), logr.Discard())

			res, err := r.Run(ctx, "sh", "-c", "echo hello")
			require.NoError(t, err)
			assert.Equal(t, "hello", strings.TrimSpace(string(res.Stdout)))
			assert.Equal(t, 0, res.ExitCode)
		})

		t.Run("Envs and prepend", func(t *testing.T) {
			r := execcontext.NewRunner(execcontext.New(map[string]string{"FOO": "bar"}, []string{"env"}), logr.Discard())

			res, err := r.Run(ctx, "sh", "-c", "echo $FOO")
			require.NoError(t, err)
			assert.Equal(t, "bar", strings.TrimSpace(string(res.Stdout)))
		})

		t.Run("Non-zero exit", func(t *testing.T) {
			r := execcontext.NewRunner(execcontext.New(nil, nil), logr.Discard())

			res, err := r.Run(ctx, "sh", "-c", "echo oops >&2; exit 3")
			assert.ErrorIs(t, err, execcontext.ErrCommandFailed)
			assert.Equal(t, 3, res.ExitCode)
			assert.Equal(t, "oops", strings.TrimSpace(string(res.Stderr)))
		})

		t.Run("Binary not found", func(t *testing.T) {
			r := execcontext.NewRunner(execcontext.New(nil, nil), logr.Discard())

			res, err := r.Run(ctx, "machina-this-binary-does-not-exist")
			assert.ErrorIs(t, err, execcontext.ErrCommandFailed)
			assert.Equal(t, -1, res.ExitCode)
		})

		t.Run("Empty command", func(t *testing.T) {
			r := execcontext.NewRunner(execcontext.New(nil, nil), logr.Discard())

			_, err := r.Run(ctx)
			assert.ErrorIs(t, err, execcontext.ErrEmptyCommand)
		})
	})

	t.Run("Start", func(t *testing.T) {
		t.Run("Success", func(t *testing.T) {
			r := execcontext.NewRunner(execcontext.New(nil, nil), logr.Discard())

			pid, err := r.Start(ctx, "sleep", "0")
			require.NoError(t, err)
			assert.Positive(t, pid)
		})

		t.Run("Binary not found", func(t *testing.T) {
			r := execcontext.NewRunner(execcontext.New(nil, nil), logr.Discard())

			_, err := r.Start(ctx, "machina-this-binary-does-not-exist")
			assert.ErrorIs(t, err, execcontext.ErrStartCommand)
		})
	})
}
