// Command enumerfix rewrites enumer output to build errors with cockroachdb/errors.
//
//	go run ./tools/enumerfix code_enumer.go level_enumer.go
package main

import (
	"fmt"
	"go/format"
	"os"
	"regexp"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
)

const (
	errorsImport    = `"github.com/cockroachdb/errors"`
	filePermissions = 0o644
)

var importBlock = regexp.MustCompile(`(?m)^import \(\n([\s\S]*?)\n\)|^import ("[^"]+")`)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: enumerfix <file>...")
		os.Exit(2)
	}

	for _, name := range os.Args[1:] {
		if err := fixFile(name); err != nil {
			fmt.Fprintln(os.Stderr, "enumerfix:", err)
			os.Exit(1)
		}
	}
}

func fixFile(name string) error {
	//nolint:gosec // G304: the file comes from go:generate
	content, err := os.ReadFile(name)
	if err != nil {
		return errors.Wrapf(err, "reading %s", name)
	}

	fixed, err := fixEnumerFile(content)
	if err != nil {
		return errors.Wrapf(err, "fixing %s", name)
	}

	return errors.Wrapf(os.WriteFile(name, fixed, filePermissions), "writing %s", name)
}

// fixEnumerFile swaps fmt.Errorf for errors.Newf and regroups the imports into a standard
// library group and a third-party group.
func fixEnumerFile(content []byte) ([]byte, error) {
	src := strings.ReplaceAll(string(content), "fmt.Errorf", "errors.Newf")

	loc := importBlock.FindStringSubmatchIndex(src)
	if loc == nil {
		return nil, errors.New("no import declaration")
	}

	var raw string

	switch {
	case loc[2] >= 0:
		raw = src[loc[2]:loc[3]]
	default:
		raw = src[loc[4]:loc[5]]
	}

	imports := parseImports(raw)

	if !usesPackage(src, "fmt") {
		imports = slices.DeleteFunc(imports, func(s string) bool { return s == `"fmt"` })
	}

	if usesPackage(src, "errors") && !slices.Contains(imports, errorsImport) {
		imports = append(imports, errorsImport)
	}

	src = src[:loc[0]] + renderImports(imports) + src[loc[1]:]

	formatted, err := format.Source([]byte(src))
	if err != nil {
		return nil, errors.Wrap(err, "formatting")
	}

	return formatted, nil
}

func parseImports(raw string) []string {
	var imports []string

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			imports = append(imports, line)
		}
	}

	return imports
}

// usesPackage reports whether src refers to pkg outside its import declaration.
func usesPackage(src, pkg string) bool {
	body := importBlock.ReplaceAllString(src, "")

	return strings.Contains(body, pkg+".")
}

func renderImports(imports []string) string {
	var std, third []string

	for _, imp := range imports {
		if strings.Contains(strings.SplitN(imp, "/", 2)[0], ".") {
			third = append(third, imp)
		} else {
			std = append(std, imp)
		}
	}

	slices.Sort(std)
	slices.Sort(third)

	var b strings.Builder

	b.WriteString("import (\n")

	for _, imp := range std {
		b.WriteString("\t" + imp + "\n")
	}

	if len(std) > 0 && len(third) > 0 {
		b.WriteString("\n")
	}

	for _, imp := range third {
		b.WriteString("\t" + imp + "\n")
	}

	b.WriteString(")")

	return b.String()
}
