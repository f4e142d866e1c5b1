//go:build unit

package execcontext_test

import (
	"os/exec"
	"testing"

	"github.com/alexandremahdhaoui/machina/pkg/execcontext"
	"github.com/stretchr/testify/assert"
)

func TestFormatCmd(t *testing.T) {
	t.Run("plain", func(t *testing.T) {
		ctx := execcontext.New(nil, nil)
		assert.Equal(t, `"tart" "clone" "debian" "i-1"`, execcontext.FormatCmd(ctx, "tart", "clone", "debian", "i-1"))
	})

	t.Run("envs and prepend", func(t *testing.T) {
		ctx := execcontext.New(map[string]string{"TART_HOME": "/var/tart"}, []string{"sudo", "-E"})
		assert.Equal(t,
			`TART_HOME="/var/tart" "sudo" "-E" "tart" "list"`,
			execcontext.FormatCmd(ctx, "tart", "list"))
	})

	t.Run("unquottable tokens", func(t *testing.T) {
		ctx := execcontext.New(nil, nil)
		assert.Equal(t, `"true" && "false"`, execcontext.FormatCmd(ctx, "true", "&&", "false"))
	})
}

func TestApplyToCmd(t *testing.T) {
	t.Run("prepend", func(t *testing.T) {
		ctx := execcontext.New(nil, []string{"env"})
		cmd := exec.Command("tart", "list")

		execcontext.ApplyToCmd(ctx, cmd)

		assert.Equal(t, []string{"env", "tart", "list"}, cmd.Args)
		assert.Nil(t, cmd.Env)
	})

	t.Run("envs inherit the process environment", func(t *testing.T) {
		t.Setenv("MACHINA_TEST_INHERITED", "yes")

		ctx := execcontext.New(map[string]string{"FOO": "bar"}, nil)
		cmd := exec.Command("tart", "list")

		execcontext.ApplyToCmd(ctx, cmd)

		assert.Contains(t, cmd.Env, "FOO=bar")
		assert.Contains(t, cmd.Env, "MACHINA_TEST_INHERITED=yes")
	})

	t.Run("copies are returned", func(t *testing.T) {
		envs := map[string]string{"A": "1"}
		prepend := []string{"sudo"}
		ctx := execcontext.New(envs, prepend)

		ctx.Envs()["B"] = "2"
		ctx.PrependCmd()[0] = "doas"

		assert.Equal(t, map[string]string{"A": "1"}, ctx.Envs())
		assert.Equal(t, []string{"sudo"}, ctx.PrependCmd())
	})
}
