package fmtx

func Format(template string, args ...any) string { return template }

func Print(template string, args ...any) {}

type Logger struct{}

func (*Logger) Infof(template string, args ...any) {}
