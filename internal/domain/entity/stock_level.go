package entity

import "time"

// StockLevel es la foto del stock actual de un material. El repositorio ya suma los
// almacenes; si llegan varias filas de la misma clave, el motor también las suma.
// MaterialKey usa la misma identidad que el motor de analítica (id → código → nombre).
type StockLevel struct {
	MaterialKey string    `json:"materialKey"`
	Atual       Number    `json:"estoqueAtual"`
	Minimo      Number    `json:"estoqueMinimo"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
