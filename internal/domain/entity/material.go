package entity

import "time"

// Material representa un ítem del catálogo (EPI, EPC, consumible).
// Los campos numéricos usan Number para tolerar datos cargados sin validación.
type Material struct {
	ID            string    `json:"id"`
	Codigo        string    `json:"codigo"` // código visible (ej: "EPI-0042"), puede estar vacío
	Nome          string    `json:"nome"`
	Descricao     string    `json:"descricao"`
	Categoria     string    `json:"categoria"` // grupo de material; marca la criticidad (EPI/EPC)
	Fabricante    string    `json:"fabricante"`
	CA            string    `json:"ca"` // certificado de aprobación del EPI
	ValorUnitario Number    `json:"valorUnitario"`
	ValidadeDias  Number    `json:"validadeDias"` // vida útil en días (0 = no aplica)
	EstoqueMinimo Number    `json:"estoqueMinimo"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
