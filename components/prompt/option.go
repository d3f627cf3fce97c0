package prompt

type Option = func(b *Builder)

// WithBackground set Builder background
func WithBackground(background ...string) Option {
	return func(b *Builder) {
		b.background = background
	}
}

// WithSteps set Builder steps
func WithSteps(steps ...string) Option {
	return func(b *Builder) {
		b.steps = steps
	}
}

// WithOutputInstructs set Builder output instructions
func WithOutputInstructs(outputInstructs ...string) Option {
	return func(b *Builder) {
		b.outputInstructs = outputInstructs
	}
}

// WithSections set Builder context sections
func WithSections(sections ...Section) Option {
	return func(b *Builder) {
		b.sections = append(b.sections, sections...)
	}
}
