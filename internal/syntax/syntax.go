package syntax

// BlockPair is an open/close marker pair for a block comment.
type BlockPair struct {
	Open  string `json:"open" yaml:"open"`
	Close string `json:"close" yaml:"close"`
}

// CommentSyntax describes the comment markers of a language.
type CommentSyntax struct {
	LineComment  []string    `json:"lineComment,omitempty" yaml:"lineComment,omitempty"`
	BlockComment []BlockPair `json:"blockComment,omitempty" yaml:"blockComment,omitempty"`
}

// Empty reports whether the syntax has no markers at all.
func (s CommentSyntax) Empty() bool {
	return len(s.LineComment) == 0 && len(s.BlockComment) == 0
}

var (
	cFamily   = CommentSyntax{LineComment: []string{"//"}, BlockComment: []BlockPair{{"/*", "*/"}}}
	hash      = CommentSyntax{LineComment: []string{"#"}}
	markup    = CommentSyntax{BlockComment: []BlockPair{{"<!--", "-->"}}}
	css       = CommentSyntax{BlockComment: []BlockPair{{"/*", "*/"}}}
	sql       = CommentSyntax{LineComment: []string{"--"}, BlockComment: []BlockPair{{"/*", "*/"}}}
	lua       = CommentSyntax{LineComment: []string{"--"}, BlockComment: []BlockPair{{"--[[", "]]"}}}
	haskell   = CommentSyntax{LineComment: []string{"--"}, BlockComment: []BlockPair{{"{-", "-}"}}}
	lisp      = CommentSyntax{LineComment: []string{";"}}
	erlang    = CommentSyntax{LineComment: []string{"%"}}
	tex       = CommentSyntax{LineComment: []string{"%"}}
	fortran   = CommentSyntax{LineComment: []string{"!"}}
	vim       = CommentSyntax{LineComment: []string{`"`}}
	ini       = CommentSyntax{LineComment: []string{";", "#"}}
	batch     = CommentSyntax{LineComment: []string{"@REM", "@rem", "@Rem", "REM", "rem", "Rem", "::"}}
	ocaml     = CommentSyntax{BlockComment: []BlockPair{{"(*", "*)"}}}
	pascal    = CommentSyntax{LineComment: []string{"//"}, BlockComment: []BlockPair{{"{", "}"}, {"(*", "*)"}}}
	powershel = CommentSyntax{LineComment: []string{"#"}, BlockComment: []BlockPair{{"<#", "#>"}}}
	ruby      = CommentSyntax{LineComment: []string{"#"}, BlockComment: []BlockPair{{"=begin", "=end"}}}
	perl      = CommentSyntax{LineComment: []string{"#"}, BlockComment: []BlockPair{{"=pod", "=cut"}}}
	python    = CommentSyntax{LineComment: []string{"#"}, BlockComment: []BlockPair{{`"""`, `"""`}, {"'''", "'''"}}}
	julia     = CommentSyntax{LineComment: []string{"#"}, BlockComment: []BlockPair{{"#=", "=#"}}}
	nim       = CommentSyntax{LineComment: []string{"#"}, BlockComment: []BlockPair{{"#[", "]#"}}}
	vue       = CommentSyntax{LineComment: []string{"//"}, BlockComment: []BlockPair{{"<!--", "-->"}, {"/*", "*/"}}}
	twig      = CommentSyntax{BlockComment: []BlockPair{{"{#", "#}"}, {"<!--", "-->"}}}
	handlebar = CommentSyntax{BlockComment: []BlockPair{{"{{!--", "--}}"}, {"{{!", "}}"}, {"<!--", "-->"}}}
	matlab    = CommentSyntax{LineComment: []string{"%"}, BlockComment: []BlockPair{{"%{", "%}"}}}
)

// defaultExtensions maps lower-case extensions (with leading dot) to syntax.
var defaultExtensions = map[string]CommentSyntax{
	// C family and friends
	".c": cFamily, ".h": cFamily, ".cc": cFamily, ".cpp": cFamily, ".cxx": cFamily,
	".hh": cFamily, ".hpp": cFamily, ".hxx": cFamily, ".m": cFamily, ".mm": cFamily,
	".cs": cFamily, ".java": cFamily, ".kt": cFamily, ".kts": cFamily, ".scala": cFamily,
	".groovy": cFamily, ".gradle": cFamily, ".go": cFamily, ".rs": cFamily, ".swift": cFamily,
	".dart": cFamily, ".js": cFamily, ".mjs": cFamily, ".cjs": cFamily, ".jsx": cFamily,
	".ts": cFamily, ".mts": cFamily, ".cts": cFamily, ".tsx": cFamily, ".php": cFamily,
	".proto": cFamily, ".zig": cFamily, ".v": cFamily, ".sol": cFamily, ".jsonc": cFamily,
	".json5": cFamily, ".scss": cFamily, ".less": cFamily, ".styl": cFamily, ".glsl": cFamily,
	".hlsl": cFamily, ".cu": cFamily, ".d": cFamily, ".fs": cFamily, ".fsx": cFamily,
	".sv": cFamily, ".svh": cFamily,

	".css":  css,
	".vue":  vue,
	".twig": twig, ".hbs": handlebar, ".handlebars": handlebar,

	// hash family
	".py": python, ".pyi": python, ".pyw": python,
	".rb": ruby, ".rake": ruby, ".gemspec": ruby,
	".pl": perl, ".pm": perl,
	".sh": hash, ".bash": hash, ".zsh": hash, ".fish": hash, ".ksh": hash,
	".ps1": powershel, ".psm1": powershel, ".psd1": powershel,
	".r": hash, ".jl": julia, ".nim": nim, ".cr": hash, ".ex": hash, ".exs": hash,
	".yaml": hash, ".yml": hash, ".toml": hash, ".tf": hash, ".tfvars": hash,
	".cmake": hash, ".mk": hash, ".dockerfile": hash, ".nix": hash, ".coffee": hash,
	".conf": hash, ".properties": hash, ".gitignore": hash, ".env": hash, ".awk": hash,
	".tcl": hash, ".bzl": hash, ".star": hash, ".gd": hash,

	// markup
	".html": markup, ".htm": markup, ".xhtml": markup, ".xml": markup, ".xsd": markup,
	".xsl": markup, ".svg": markup, ".md": markup, ".markdown": markup,
	".svelte": markup, ".astro": markup, ".jsp": markup, ".plist": markup, ".csproj": markup,

	// dash family
	".sql": sql, ".lua": lua, ".hs": haskell, ".lhs": haskell, ".elm": haskell,
	".ada": {LineComment: []string{"--"}}, ".adb": {LineComment: []string{"--"}}, ".ads": {LineComment: []string{"--"}},
	".vhd": {LineComment: []string{"--"}}, ".vhdl": {LineComment: []string{"--"}},

	// everything else
	".lisp": lisp, ".lsp": lisp, ".el": lisp, ".clj": lisp, ".cljs": lisp, ".cljc": lisp,
	".edn": lisp, ".scm": lisp, ".ss": lisp, ".rkt": lisp, ".asm": lisp,
	".erl": erlang, ".hrl": erlang, ".tex": tex, ".sty": tex, ".cls": tex, ".bib": tex,
	".f90": fortran, ".f95": fortran, ".f03": fortran, ".f08": fortran,
	".vim": vim, ".ini": ini, ".cfg": ini, ".bat": batch, ".cmd": batch,
	".ml": ocaml, ".mli": ocaml, ".pas": pascal, ".dpr": pascal,
	".matlab": matlab,
}

// defaultNames maps lower-case base names of extensionless files to syntax.
var defaultNames = map[string]CommentSyntax{
	"makefile":       hash,
	"gnumakefile":    hash,
	"dockerfile":     hash,
	"containerfile":  hash,
	"rakefile":       ruby,
	"gemfile":        ruby,
	"vagrantfile":    ruby,
	"cmakelists.txt": hash,
	"justfile":       hash,
	"build":          hash,
	"workspace":      hash,
}

// binaryExtensions are never eligible unless explicitly included.
var binaryExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".bmp": true, ".ico": true,
	".webp": true, ".tiff": true, ".psd": true, ".pdf": true, ".zip": true, ".gz": true,
	".tgz": true, ".bz2": true, ".xz": true, ".zst": true, ".7z": true, ".rar": true,
	".tar": true, ".jar": true, ".war": true, ".class": true, ".exe": true, ".dll": true,
	".so": true, ".dylib": true, ".a": true, ".o": true, ".obj": true, ".lib": true,
	".wasm": true, ".pyc": true, ".pyo": true, ".mp3": true, ".mp4": true, ".mov": true,
	".avi": true, ".mkv": true, ".wav": true, ".flac": true, ".ogg": true, ".ttf": true,
	".otf": true, ".woff": true, ".woff2": true, ".eot": true, ".db": true, ".sqlite": true,
	".bin": true, ".dat": true, ".iso": true, ".dmg": true,
}
