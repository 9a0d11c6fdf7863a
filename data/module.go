package data

// ModuleFile is the compiler's view of one source module.
type ModuleFile struct {
	SourceFilePath string
	Cmp            *ComponentMeta
}

// ComponentMeta holds what is known about the component a module declares.
type ComponentMeta struct {
	TagName   string
	StyleDocs []StyleDoc
}

// StyleDoc documents a css custom property of a component.
type StyleDoc struct {
	Name       string `json:"name"`
	Docs       string `json:"docs"`
	Annotation string `json:"annotation"`
}
