package engine

import (
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"runtime"
	"time"

	"github.com/go-kit/kit/log/term"
	"github.com/gosuri/uiprogress"
)

// WaitHTTP polls url on the given interval until it answers with a 2xx
// status or the timeout elapses. On a terminal a progress bar tracks the
// elapsed share of the timeout; otherwise the wait is silent.
func WaitHTTP(url string, interval, timeout time.Duration) error {
	steps := int(timeout / interval)
	if steps < 1 {
		steps = 1
	}

	var bar *uiprogress.Bar
	if term.IsTerminal(os.Stdout) {
		uiprogress.Start()
		bar = uiprogress.AddBar(steps).AppendCompleted()
		bar.PrependFunc(func(*uiprogress.Bar) string {
			return "waiting for " + url
		})
		defer uiprogress.Stop()
	}

	client := &http.Client{Timeout: interval}
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		response, err := client.Get(url)
		if err == nil {
			response.Body.Close()
			if response.StatusCode < 300 {
				if bar != nil {
					bar.Set(steps)
				}
				return nil
			}
		}
		if bar != nil {
			bar.Incr()
		}
		time.Sleep(interval)
	}
	return fmt.Errorf("%s did not become ready within %s", url, timeout)
}

// Browser opens URLs for the operator.
type Browser interface {
	Open(url string) error
}

// ExecBrowser shells out to the platform opener.
type ExecBrowser struct{}

// Open launches the default browser on the URL without waiting for it.
func (ExecBrowser) Open(url string) error {
	opener := "xdg-open"
	if runtime.GOOS == "darwin" {
		opener = "open"
	}
	return exec.Command(opener, url).Start()
}
