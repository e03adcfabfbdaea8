package entity

import "time"

// Estados de una salida de material.
const (
	SaidaStatusEntregue  = "entregue"
	SaidaStatusPendente  = "pendente"
	SaidaStatusCancelado = "cancelado"
)

// Saida representa una salida (entrega) de material a una persona.
// Material llega ya unido por el repositorio; puede ser nil si la referencia quedó huérfana.
type Saida struct {
	ID                string    `json:"id"`
	MaterialID        string    `json:"materialId"`
	Material          *Material `json:"material,omitempty"`
	Quantidade        Number    `json:"quantidade"`
	PessoaID          string    `json:"pessoaId"`
	PessoaNome        string    `json:"pessoaNome"`
	PessoaMatricula   string    `json:"pessoaMatricula"`
	SetorID           string    `json:"setorId"`
	SetorNome         string    `json:"setorNome"`
	CentroServicoID   string    `json:"centroServicoId"`
	CentroServicoNome string    `json:"centroServicoNome"`
	CentroCustoNome   string    `json:"centroCustoNome"`
	Status            string    `json:"status"`
	Troca             bool      `json:"troca"` // entrega por cambio de un EPI dañado/vencido
	DataEntrega       time.Time `json:"dataEntrega"`
}

// MaterialOrEmpty devuelve el material unido o un valor vacío, nunca nil.
func (s *Saida) MaterialOrEmpty() Material {
	if s.Material == nil {
		return Material{}
	}
	return *s.Material
}
