package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"fortio.org/log"
	"github.com/peterh/liner"
	"golang.org/x/term"

	"github.com/pb1729/pycalc"
	"github.com/pb1729/pycalc/internal/plotwin"
)

const banner = "\n\t\t\t---- Pycalc ----\n"

func red(s string) string { return "\x1b[31m" + s + "\x1b[0m" }

// redWriter colours each write, keeping the trailing newline outside the
// escape sequence.
type redWriter struct{ w io.Writer }

func (r redWriter) Write(p []byte) (int, error) {
	s := string(p)
	body := strings.TrimRight(s, "\n")
	if _, err := io.WriteString(r.w, red(body)+s[len(body):]); err != nil {
		return 0, err
	}
	return len(p), nil
}

func main() {
	os.Exit(run())
}

func run() int {
	log.SetLogLevel(log.Warning)
	fmt.Println(banner)

	host := pycalc.Host{Out: os.Stdout}
	var in pycalc.LineReader
	interactive := term.IsTerminal(int(os.Stdin.Fd()))
	if interactive {
		ln := liner.NewLiner()
		defer ln.Close()
		ln.SetCtrlCAborts(true)

		sigc := make(chan os.Signal, 1)
		signal.Notify(sigc, syscall.SIGTERM, syscall.SIGHUP)
		defer signal.Stop(sigc)
		go func() {
			<-sigc
			ln.Close()
			os.Exit(130)
		}()

		li := newLinerInput(ln)
		in = li
		host.History = li.hist
	} else {
		in = newPlainInput(os.Stdin, os.Stdout)
	}
	host.Prompt = in.Prompt

	win := plotwin.New()
	host.Renderer = win

	ip := pycalc.NewInterpreter(host)
	eng := pycalc.NewEngine(ip, in, os.Stdout)
	if interactive {
		eng.Err = redWriter{os.Stdout}
	}
	log.Infof("pycalc starting (interactive=%v)", interactive)

	if err := win.Run(eng.Run); err != nil {
		fmt.Fprintln(os.Stderr, red(err.Error()))
		return 1
	}
	return 0
}
