package main

import (
	"fmt"
	"io"
	"strings"

	"paraphrase-be/pkg/persona"

	"github.com/fatih/color"
)

var (
	nameColor  = color.New(color.FgCyan, color.Bold)
	labelColor = color.New(color.FgYellow)
	traitColor = color.New(color.FgGreen)
)

func renderCard(w io.Writer, p persona.Persona) {
	nameColor.Fprintf(w, "%s, %d\n", p.Name, p.Age)
	labelColor.Fprintf(w, "  %s | %s | %s\n", p.LifeStage.Label(), p.FamilyStatus.Label(), p.Personality)
	fmt.Fprintf(w, "  %s\n", p.Context)
	if traits := p.TopTraits(); len(traits) > 0 {
		traitColor.Fprintf(w, "  %s\n", strings.Join(traits, " · "))
	}
	fmt.Fprintln(w)
}
