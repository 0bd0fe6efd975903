package dialog

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/mobli/pkg/mobli"
)

const (
	testAuthURL     = "https://oauth.mobli.com/authorize?client_id=abc"
	testRedirectURI = "mobliabc://authorize"
)

func show(t *testing.T, d *Terminal, ctx context.Context) mobli.DialogResult {
	t.Helper()

	var (
		got   mobli.DialogResult
		calls int
	)
	d.Show(ctx, testAuthURL, testRedirectURI, func(res mobli.DialogResult) {
		got = res
		calls++
	})

	require.Equal(t, 1, calls)
	return got
}

func TestTerminalShow(t *testing.T) {
	t.Parallel()

	t.Run("pasted redirect completes", func(t *testing.T) {
		var out bytes.Buffer
		opened := ""
		d := &Terminal{
			In:   strings.NewReader("mobliabc://authorize#access_token=T&expires_in=0&user_id=9\n"),
			Out:  &out,
			Open: func(url string) error { opened = url; return nil },
		}

		res := show(t, d, context.Background())

		require.Equal(t, mobli.DialogComplete, res.Kind())
		require.Equal(t, "T", res.Values.Get(mobli.FieldAccessToken))
		require.Equal(t, testAuthURL, opened)
		require.Contains(t, out.String(), testAuthURL)
		require.Contains(t, out.String(), testRedirectURI)
	})

	t.Run("redirect without trailing newline", func(t *testing.T) {
		d := &Terminal{In: strings.NewReader("mobliabc://authorize#access_token=T"), Out: io.Discard}

		res := show(t, d, context.Background())
		require.Equal(t, mobli.DialogComplete, res.Kind())
	})

	t.Run("empty line cancels", func(t *testing.T) {
		d := &Terminal{In: strings.NewReader("\n"), Out: io.Discard}

		res := show(t, d, context.Background())
		require.Equal(t, mobli.DialogCanceled, res.Kind())
	})

	t.Run("closed input cancels", func(t *testing.T) {
		d := &Terminal{In: strings.NewReader(""), Out: io.Discard}

		res := show(t, d, context.Background())
		require.ErrorIs(t, res.Err, mobli.ErrCanceled)
	})

	t.Run("browser failure still waits for input", func(t *testing.T) {
		var out bytes.Buffer
		d := &Terminal{
			In:   strings.NewReader("mobliabc://authorize?error=access_denied\n"),
			Out:  &out,
			Open: func(string) error { return errors.New("no display") },
		}

		res := show(t, d, context.Background())
		require.Equal(t, mobli.DialogCanceled, res.Kind())
		require.Contains(t, out.String(), "no display")
	})

	t.Run("canceled context is a dialog error", func(t *testing.T) {
		reader, writer := io.Pipe()
		t.Cleanup(func() { _ = writer.Close() })

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		d := &Terminal{In: reader, Out: io.Discard}
		res := show(t, d, ctx)

		var dialogErr *mobli.DialogError
		require.ErrorAs(t, res.Err, &dialogErr)
		require.ErrorIs(t, res.Err, context.Canceled)

		// The reader was closed, so nothing is left waiting on input
		_, err := writer.Write([]byte("late\n"))
		require.ErrorIs(t, err, io.ErrClosedPipe)
	})
}
