// Package catalog supplies the configured enumerations consumed by the
// input widgets: the chart of accounts (PUC), cost centers, business
// units and the third-party directory. The posting workflow never
// validates an account code against these lists before persistence;
// accounts are free-form strings at the storage layer.
package catalog

import (
	"sort"
	"strings"
)

// Account is one entry of the chart of accounts.
type Account struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Catalog holds the enumerations offered to the entry editor.
type Catalog struct {
	Accounts       []Account `json:"accounts"`
	CostCenters    []string  `json:"cost_centers"`
	BusinessUnits  []string  `json:"business_units"`
	Counterparties []string  `json:"counterparties"`
}

// Default returns the baseline catalog used when no overrides are
// configured. Codes follow the Colombian PUC naming scheme, which the
// reporting layer relies on for prefix-based account classes.
func Default() *Catalog {
	return &Catalog{
		Accounts: []Account{
			{Code: "1105", Name: "Caja"},
			{Code: "1110", Name: "Bancos"},
			{Code: "1305", Name: "Clientes"},
			{Code: "1435", Name: "Mercancias"},
			{Code: "2205", Name: "Proveedores nacionales"},
			{Code: "2365", Name: "Retencion en la fuente"},
			{Code: "2408", Name: "IVA por pagar"},
			{Code: "4135", Name: "Comercio al por mayor y al por menor"},
			{Code: "4210", Name: "Ingresos financieros"},
			{Code: "5105", Name: "Gastos de personal"},
			{Code: "5135", Name: "Servicios"},
			{Code: "5195", Name: "Diversos"},
			{Code: "6135", Name: "Costo de ventas"},
		},
		CostCenters:    []string{"Administracion", "Ventas", "Produccion"},
		BusinessUnits:  []string{"Principal", "Sucursal Norte", "Sucursal Sur"},
		Counterparties: []string{"Distribuidora El Sol", "Suministros Andinos", "Cliente Varios"},
	}
}

// ParseAccounts parses a "code=name,code=name" override string into a
// sorted chart of accounts. Malformed segments are skipped.
func ParseAccounts(raw string) []Account {
	var accounts []Account
	for _, part := range strings.Split(raw, ",") {
		code, name, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found || code == "" {
			continue
		}
		accounts = append(accounts, Account{Code: code, Name: name})
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].Code < accounts[j].Code })
	return accounts
}

// ParseList parses a comma-separated override string, dropping empty items.
func ParseList(raw string) []string {
	var items []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}
