package domain

import (
	"slices"
	"strings"

	"github.com/kballard/go-shellquote"
	"go.trai.ch/zerr"
)

// FragmentKind discriminates the Fragment variants.
type FragmentKind int

const (
	// FragmentLiteral is a single token taken verbatim.
	FragmentLiteral FragmentKind = iota
	// FragmentTokens is an ordered list of verbatim tokens.
	FragmentTokens
	// FragmentWords is a list of user option strings that may hold several shell words each.
	FragmentWords
	// FragmentOptions is an ordered group of "--name value" options.
	FragmentOptions
	// FragmentBytes is raw subprocess output decoded as UTF-8.
	FragmentBytes
	// FragmentPackageFlags is resolved through the package-flag tool at execution time.
	FragmentPackageFlags
	// FragmentGlob is a file pattern expanded at execution time.
	FragmentGlob
)

// sentinelPackages name platform pseudo-packages that have no pkg-config entry.
var sentinelPackages = []string{"posix", "posixtypes"}

// IsSentinelPackage reports whether pkg is a pseudo-package skipped by flag resolution.
func IsSentinelPackage(pkg string) bool {
	return slices.Contains(sentinelPackages, pkg)
}

// Option is one named option with one or more values.
type Option struct {
	Name   string
	Values []string
}

// Opt builds an Option.
func Opt(name string, values ...string) Option {
	return Option{Name: name, Values: values}
}

// Fragment is one positional piece of a Command.
type Fragment struct {
	kind     FragmentKind
	tokens   []string
	options  []Option
	packages []string
	skip     bool
}

// Literal returns a fragment holding a single token.
func Literal(s string) Fragment {
	return Fragment{kind: FragmentLiteral, tokens: []string{s}}
}

// Tokens returns a fragment holding an ordered list of tokens.
func Tokens(s ...string) Fragment {
	return Fragment{kind: FragmentTokens, tokens: s}
}

// Words returns a fragment of option strings as written by a user, e.g. "-g -O2".
// They compose verbatim and are split into shell words for argv.
func Words(s ...string) Fragment {
	return Fragment{kind: FragmentWords, tokens: s}
}

// Options returns a fragment expanding to "--name value" for every value of every option.
func Options(opts ...Option) Fragment {
	return Fragment{kind: FragmentOptions, options: opts}
}

// Bytes returns a fragment from raw tool output. Invalid UTF-8 is replaced.
func Bytes(b []byte) Fragment {
	return Fragment{kind: FragmentBytes, tokens: []string{strings.ToValidUTF8(string(b), "�")}}
}

// PackageFlags returns a fragment resolved to the compiler flags of pkgs at execution time.
// When skipSentinels is set, pseudo-packages such as posix are left out.
func PackageFlags(pkgs []string, skipSentinels bool) Fragment {
	return Fragment{kind: FragmentPackageFlags, packages: pkgs, skip: skipSentinels}
}

// Glob returns a fragment expanded to the files matching pattern at execution time.
func Glob(pattern string) Fragment {
	return Fragment{kind: FragmentGlob, tokens: []string{pattern}}
}

// Kind reports which variant f is.
func (f Fragment) Kind() FragmentKind { return f.kind }

// Pattern returns the pattern of a FragmentGlob.
func (f Fragment) Pattern() string {
	if f.kind != FragmentGlob {
		return ""
	}
	return f.tokens[0]
}

// Packages returns the packages a FragmentPackageFlags resolves, sentinels removed if requested.
func (f Fragment) Packages() []string {
	if !f.skip {
		return slices.Clone(f.packages)
	}
	out := make([]string, 0, len(f.packages))
	for _, p := range f.packages {
		if !IsSentinelPackage(p) {
			out = append(out, p)
		}
	}
	return out
}

// static renders the fragment without consulting the filesystem or any tool.
func (f Fragment) static() []string {
	switch f.kind {
	case FragmentLiteral, FragmentTokens, FragmentWords, FragmentBytes, FragmentGlob:
		return f.tokens
	case FragmentOptions:
		var out []string
		for _, o := range f.options {
			for _, v := range o.Values {
				out = append(out, "--"+o.Name+" "+v)
			}
		}
		return out
	case FragmentPackageFlags:
		pkgs := f.Packages()
		out := make([]string, len(pkgs))
		for i, p := range pkgs {
			out[i] = "$(pkg-config --cflags " + p + ")"
		}
		return out
	default:
		return nil
	}
}

// Command is an external command invocation made of a name and positional fragments.
type Command struct {
	Name      string
	Fragments []Fragment
}

// NewCommand builds a Command.
func NewCommand(name string, fragments ...Fragment) Command {
	return Command{Name: name, Fragments: fragments}
}

// Compose joins the command name and every fragment token with single spaces.
// Nothing is escaped.
func Compose(name string, fragments ...Fragment) string {
	parts := []string{name}
	for _, f := range fragments {
		for _, tok := range f.static() {
			if tok != "" {
				parts = append(parts, tok)
			}
		}
	}
	return strings.Join(parts, " ")
}

// String returns the composed form of c.
func (c Command) String() string {
	return Compose(c.Name, c.Fragments...)
}

// ExpandFunc resolves a dynamic fragment (package flags or glob) into argv words.
type ExpandFunc func(Fragment) ([]string, error)

// Argv returns c as a discrete argument vector. Dynamic fragments go through expand.
func (c Command) Argv(expand ExpandFunc) ([]string, error) {
	argv := []string{c.Name}
	for _, f := range c.Fragments {
		switch f.kind {
		case FragmentLiteral, FragmentTokens, FragmentBytes:
			for _, tok := range f.tokens {
				if tok != "" {
					argv = append(argv, tok)
				}
			}
		case FragmentWords:
			for _, s := range f.tokens {
				words, err := shellquote.Split(s)
				if err != nil {
					return nil, zerr.With(zerr.Wrap(err, "failed to split option string"), "option", s)
				}
				argv = append(argv, words...)
			}
		case FragmentOptions:
			for _, o := range f.options {
				for _, v := range o.Values {
					argv = append(argv, "--"+o.Name, v)
				}
			}
		case FragmentPackageFlags, FragmentGlob:
			words, err := expand(f)
			if err != nil {
				return nil, err
			}
			argv = append(argv, words...)
		}
	}
	return argv, nil
}
