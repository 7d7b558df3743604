package cli

import (
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/shopspring/decimal"
)

var templateFuncs = template.FuncMap{
	"money": formatMoney,
}

// render выполняет шаблон и пишет результат в io
func (c *Cli) render(name, text string, data any) error {
	tmpl, err := template.New(name).Funcs(templateFuncs).Parse(text)
	if err != nil {
		return fmt.Errorf("failed to parse %s template: %w", name, err)
	}
	if err := tmpl.Execute(c.io, data); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}
	return nil
}

// formatMoney форматирует сумму в донгах с разделителями тысяч: 1.250.000 ₫
func formatMoney(amount decimal.Decimal) string {
	text := amount.Abs().StringFixed(0)

	var b strings.Builder
	if amount.IsNegative() && text != "0" {
		b.WriteByte('-')
	}
	for i, digit := range text {
		if i > 0 && (len(text)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(digit)
	}
	b.WriteString(" ₫")
	return b.String()
}

// readPasswordFile читает пароль из файла, убирая завершающий перевод строки
func readPasswordFile(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read password file: %w", err)
	}
	password := strings.TrimSpace(string(content))
	if password == "" {
		return "", fmt.Errorf("password file is empty")
	}
	return password, nil
}
