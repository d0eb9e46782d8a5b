package cli

import (
	"text/template"
)

var funcs = template.FuncMap{
	"price": formatPrice,
}

const cartTemplate = `
=== Cart {{ .ID }} ===
{{- if .Stale }}
(offline: showing cached cart)
{{- end }}
{{- if eq (len .Items) 0 }}

Cart is empty.

Use 'storefront search <query>' and 'storefront add <product-id>' to add items.
{{ else }}
{{ range .Items }}
- {{ .Name }} x{{ .Quantity }}
   Item:  {{ .ID }}
   Price: {{ price .UnitPrice .Currency }}
   Total: {{ price .LineTotal .Currency }}
{{- end }}

Total: {{ price .Total .Currency }}
{{- if .Pending }}
Pending changes: {{ .Pending }}
{{- end }}
{{ end }}`

const productsTemplate = `
{{- if eq (len .) 0 }}
No products found.
{{ else }}
Found {{ len . }} product(s):
{{ range . }}
- {{ .Name }} ({{ price .Price .Currency }})
   ID: {{ .ID }}
   {{- if .Description }}
   {{ .Description }}
   {{- end }}
{{- end }}
{{ end }}`

const statusTemplate = `
=== Cart Status ===

Cart ID:   {{ .CartID }}
{{- if .LastSync.IsZero }}
Last sync: never
{{- else }}
Last sync: {{ .LastSync.Format "2006-01-02T15:04:05Z07:00" }}
{{- end }}
{{- if .Cached }}
Cached:    {{ .Items }} item(s), {{ .Quantity }} unit(s), version {{ .Version }}
{{- else }}
Cached:    nothing
{{- end }}
`

const shellHelp = `
Commands:
  show                    Show cart
  + <item> [n]            Increase quantity (sent after a short pause)
  - <item> [n]            Decrease quantity (never below 1)
  add <product> [qty]     Add product to cart
  rm <item>               Remove item from cart
  search <query>          Search products
  flush                   Send pending changes now
  Ctrl+D / Ctrl+C         Send pending changes and exit
  help                    Show this help
  quit                    Send pending changes and exit
`

var (
	cartTmpl     = template.Must(template.New("cart").Funcs(funcs).Parse(cartTemplate))
	productsTmpl = template.Must(template.New("products").Funcs(funcs).Parse(productsTemplate))
	statusTmpl   = template.Must(template.New("status").Parse(statusTemplate))
)
