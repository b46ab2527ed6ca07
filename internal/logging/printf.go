package logging

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// PrintfAdapter lets libraries that expect a Printf/Fatalf logger, such as
// goose, write through a Logger.
type PrintfAdapter struct {
	l    Logger
	exit func(int)
}

func NewPrintfAdapter(l Logger) *PrintfAdapter {
	return &PrintfAdapter{l: l, exit: os.Exit}
}

func (a *PrintfAdapter) Printf(format string, v ...any) {
	a.l.Info(context.Background(), strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (a *PrintfAdapter) Fatalf(format string, v ...any) {
	a.l.Error(context.Background(), strings.TrimSpace(fmt.Sprintf(format, v...)))
	a.exit(1)
}
