package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/golang/glog"
)

// raw disables the terminal rendering of markdown output.
var raw bool

// printMarkdown renders markdown for the terminal and prints it. The markdown
// itself is printed when it cannot be rendered.
func printMarkdown(md string) {
	if raw {
		fmt.Print(md)
		return
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err != nil {
		glog.Warningf("cannot render markdown: %v", err)
		fmt.Print(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		glog.Warningf("cannot render markdown: %v", err)
		fmt.Print(md)
		return
	}
	fmt.Fprint(os.Stdout, out)
}
