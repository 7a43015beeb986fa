package config

// Lathefile is the structure of lathe.yaml.
type Lathefile struct {
	Build      string      `yaml:"build"`
	Platform   string      `yaml:"platform"`
	CC         string      `yaml:"cc"`
	Translator string      `yaml:"translator"`
	State      string      `yaml:"state"`
	Modules    []ModuleDTO `yaml:"modules"`
}

// ModuleDTO is one module entry of lathe.yaml.
type ModuleDTO struct {
	Dir              string   `yaml:"dir"`
	Library          string   `yaml:"library"`
	Version          string   `yaml:"version"`
	SOName           string   `yaml:"soname"`
	Packages         []string `yaml:"packages"`
	DependsOn        []string `yaml:"depends_on"`
	TranslateOptions []string `yaml:"translate_options"`
	CompileOptions   []string `yaml:"compile_options"`
	LinkFlags        []string `yaml:"link_flags"`
	BinOptions       []string `yaml:"bin_options"`
}

// hclLathefile is the structure of lathe.hcl. Modules are labelled blocks:
//
//	module "libxmlbird" {
//	  library = "xmlbird"
//	  version = "1.2.3"
//	}
type hclLathefile struct {
	Build      string       `hcl:"build,optional"`
	Platform   string       `hcl:"platform,optional"`
	CC         string       `hcl:"cc,optional"`
	Translator string       `hcl:"translator,optional"`
	State      string       `hcl:"state,optional"`
	Modules    []*hclModule `hcl:"module,block"`
}

type hclModule struct {
	Dir              string   `hcl:"dir,label"`
	Library          string   `hcl:"library,optional"`
	Version          string   `hcl:"version,optional"`
	SOName           string   `hcl:"soname,optional"`
	Packages         []string `hcl:"packages,optional"`
	DependsOn        []string `hcl:"depends_on,optional"`
	TranslateOptions []string `hcl:"translate_options,optional"`
	CompileOptions   []string `hcl:"compile_options,optional"`
	LinkFlags        []string `hcl:"link_flags,optional"`
	BinOptions       []string `hcl:"bin_options,optional"`
}

func (f *hclLathefile) toLathefile() Lathefile {
	out := Lathefile{
		Build:      f.Build,
		Platform:   f.Platform,
		CC:         f.CC,
		Translator: f.Translator,
		State:      f.State,
		Modules:    make([]ModuleDTO, 0, len(f.Modules)),
	}
	for _, m := range f.Modules {
		out.Modules = append(out.Modules, ModuleDTO{
			Dir:              m.Dir,
			Library:          m.Library,
			Version:          m.Version,
			SOName:           m.SOName,
			Packages:         m.Packages,
			DependsOn:        m.DependsOn,
			TranslateOptions: m.TranslateOptions,
			CompileOptions:   m.CompileOptions,
			LinkFlags:        m.LinkFlags,
			BinOptions:       m.BinOptions,
		})
	}
	return out
}
