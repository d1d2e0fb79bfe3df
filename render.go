package main

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/go-i2p/reesa/lib/filecrypt"
	"github.com/go-i2p/reesa/lib/keys"
	"github.com/samber/oops"
	"gopkg.in/yaml.v3"
)

const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	labelStyle   = lipgloss.NewStyle().Bold(true).Width(18)
	privateStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	publicStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

// keyReport is the yaml form of show_key.
type keyReport struct {
	Private     bool             `yaml:"private"`
	Bits        int              `yaml:"bits"`
	Fingerprint string           `yaml:"fingerprint"`
	Key         keys.KeyMaterial `yaml:"key"`
}

type renderFunc func(filecrypt.KeyInfo) (string, error)

func renderer(format string) (renderFunc, error) {
	switch strings.ToLower(format) {
	case outputText, "":
		return renderText, nil
	case outputJSON:
		return renderJSON, nil
	case outputYAML:
		return renderYAML, nil
	default:
		return nil, oops.Errorf("unknown output format %q (want text, json or yaml)", format)
	}
}

func renderText(info filecrypt.KeyInfo) (string, error) {
	kind := publicStyle.Render("public key")
	if info.Private {
		kind = privateStyle.Render("private key")
	}

	m := info.Material
	rows := [][2]string{
		{"bits", strconv.Itoa(info.Bits)},
		{"fingerprint", info.Fingerprint},
		{keys.FieldPublicExponent, m.PublicExponent},
		{keys.FieldModulus, m.Modulus},
	}
	if info.Private {
		rows = append(rows,
			[2]string{keys.FieldP, m.P},
			[2]string{keys.FieldQ, m.Q},
			[2]string{keys.FieldPrivateExponent, m.PrivateExponent},
			[2]string{keys.FieldTotientModulus, m.TotientModulus},
		)
	}

	lines := []string{titleStyle.Render(kind)}
	for _, r := range rows {
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(r[0]), r[1]))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...) + "\n", nil
}

func renderJSON(info filecrypt.KeyInfo) (string, error) {
	return string(keys.Encode(info.Material)), nil
}

func renderYAML(info filecrypt.KeyInfo) (string, error) {
	out, err := yaml.Marshal(keyReport{
		Private:     info.Private,
		Bits:        info.Bits,
		Fingerprint: info.Fingerprint,
		Key:         info.Material,
	})
	if err != nil {
		return "", oops.Wrapf(err, "failed to render yaml")
	}
	return string(out), nil
}
