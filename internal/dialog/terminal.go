// Package dialog provides login dialogs for hosts without an embedded web view.
package dialog

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/exec"
	"runtime"
	"strings"

	"github.com/aussiebroadwan/mobli/pkg/mobli"
)

// Terminal is a mobli.Dialog for command line hosts. It prints the login URL,
// optionally opens it in a browser, and reads back the URL the browser was
// finally redirected to. An empty line cancels the login. In is closed when
// the context ends first and it implements io.Closer.
type Terminal struct {
	In  io.Reader
	Out io.Writer

	// Open launches the login URL, nil to only print it
	Open func(url string) error
}

var _ mobli.Dialog = (*Terminal)(nil)

// Show implements mobli.Dialog.
func (d *Terminal) Show(ctx context.Context, authURL, redirectURI string, listener mobli.DialogListener) {
	fmt.Fprintf(d.Out, "Open this URL to log in to Mobli:\n\n  %s\n\n", authURL)

	if d.Open != nil {
		if err := d.Open(authURL); err != nil {
			fmt.Fprintf(d.Out, "Could not open a browser (%v), copy the URL instead.\n", err)
		}
	}

	fmt.Fprintf(d.Out, "After logging in, paste the address starting with %s (empty line to cancel):\n", redirectURI)

	lines := make(chan string, 1)
	errs := make(chan error, 1)
	go func() {
		line, err := bufio.NewReader(d.In).ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			errs <- err
			return
		}
		lines <- line
	}()

	select {
	case <-ctx.Done():
		// Unblocks the pending read when the input can be closed
		if closer, ok := d.In.(io.Closer); ok {
			_ = closer.Close()
		}
		listener(mobli.DialogResult{Err: &mobli.DialogError{FailingURL: authURL, Err: ctx.Err()}})
	case err := <-errs:
		if err == io.EOF {
			listener(mobli.DialogResult{Err: mobli.ErrCanceled})
			return
		}
		listener(mobli.DialogResult{Err: &mobli.DialogError{Err: fmt.Errorf("failed to read redirect: %w", err)}})
	case line := <-lines:
		if strings.TrimSpace(line) == "" {
			listener(mobli.DialogResult{Err: mobli.ErrCanceled})
			return
		}
		listener(mobli.ParseRedirect(redirectURI, line))
	}
}

// OpenBrowser opens url with the platform's default handler.
func OpenBrowser(url string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}
