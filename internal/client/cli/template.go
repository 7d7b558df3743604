package cli

const rootLong = `Koi shop storefront client.

Browse the koi catalog, keep a cart on this device, check out and follow
your orders. Staff can manage products and orders, admins can view revenue.

Configuration is read from KOISHOP_* environment variables and an optional
.env file; global flags override them.`

const productListTemplate = `
{{- if eq (len .) 0 -}}
No products found.
{{ else -}}
Found {{ len . }} product(s):
{{ range . }}
- {{ .Name }}{{ if .Type }} ({{ .Type }}){{ end }}
   ID:    {{ .ID }}
   Price: {{ money .Price }}
   Stock: {{ .Quantity }}
{{- end }}

Use 'koishop products get <id>' to view details.
{{ end -}}
`

const productTemplate = `
=== {{ .Name }} ===

ID:          {{ .ID }}
Price:       {{ money .Price }}
Stock:       {{ .Quantity }}
{{- if .Type }}
Type:        {{ .Type }}
{{- end }}
{{- if .Breed }}
Breed:       {{ .Breed }}
{{- end }}
{{- if .Origin }}
Origin:      {{ .Origin }}
{{- end }}
{{- if .Sex }}
Sex:         {{ .Sex }}
{{- end }}
{{- if .Age }}
Age:         {{ .Age }}
{{- end }}
{{- if .Size }}
Size:        {{ .Size }}
{{- end }}
{{- if .Character }}
Character:   {{ .Character }}
{{- end }}
{{- if .Diet }}
Diet:        {{ .Diet }}
{{- end }}
{{- if .Image }}
Image:       {{ .Image }}
{{- end }}
{{- if .Description }}

{{ .Description }}
{{- end }}
`

const cartTemplate = `
{{- if eq (len .Lines) 0 -}}
Your cart is empty.

Use 'koishop cart add <product-id>' to add a koi.
{{ else -}}
=== Cart ===
{{ range .Lines }}
- {{ .Name }} x{{ .Quantity }}
   ID:       {{ .ProductID }}
   Price:    {{ money .Price }}
   Subtotal: {{ money .Subtotal }}
{{- end }}

Total: {{ money .Total }}
{{ end -}}
`

const quoteTemplate = `Subtotal: {{ money .Subtotal }}
{{- if .Discount.IsPositive }}
Points:  -{{ money .Discount }}
{{- end }}
To pay:   {{ money .Total }}
`

const orderListTemplate = `
{{- if eq (len .) 0 -}}
No orders found.
{{ else -}}
Found {{ len . }} order(s):
{{ range . }}
- {{ .ID }} [{{ .Status }}]
   Total:   {{ money .TotalPrice }}
   Payment: {{ .PaymentMethod }}
   Address: {{ .AddressShipping.Street }}, {{ .AddressShipping.District }}, {{ .AddressShipping.City }}
   Items:   {{ len .CartDetails }}
   {{- if .CreatedAt }}
   Created: {{ .CreatedAt }}
   {{- end }}
   {{- if .CancelReason }}
   Reason:  {{ .CancelReason }}
   {{- end }}
{{- end }}
{{ end -}}
`

const statusTemplate = `
=== Account ===

Name:   {{ .Name }}
Email:  {{ .Email }}
Role:   {{ .Role }}
{{- if .Phone }}
Phone:  {{ .Phone }}
{{- end }}
{{- if .Dob }}
Born:   {{ .Dob }}
{{- end }}
Points: {{ .Point }}
`

const revenueTemplate = `
{{- range .Buckets }}
{{ if .Date }}{{ .Date }}{{ else }}Month {{ .Month }}{{ end }}  {{ money .Revenue }}{{ if .Orders }}  ({{ .Orders }} orders){{ end }}
{{- end }}

Total: {{ money .Total }}
`
