package models

import (
	"fmt"
	"time"
)

// Sexo do paciente
const (
	SexoMasculino = "M"
	SexoFeminino  = "F"
)

// Tipo de atendimento
const (
	AtendimentoParticular = "PAR"
	AtendimentoPublico    = "PUB"
)

// PlanilhaEmergencia representa o registro de atendimento de uma emergência
type PlanilhaEmergencia struct {
	ID int64 `json:"id" db:"id"`

	// 1. Notificação
	DataHoraContato        time.Time `json:"data_hora_contato" db:"data_hora_contato"`
	NomeTelefonou          string    `json:"nome_telefonou" db:"nome_telefonou" validate:"required,max=150"`
	ContatoTelefonou       string    `json:"contato_telefonou" db:"contato_telefonou" validate:"required,max=100"`
	PacienteSolicitouAjuda bool      `json:"paciente_solicitou_ajuda" db:"paciente_solicitou_ajuda"`
	Parentesco             string    `json:"parentesco" db:"parentesco" validate:"required,max=100"`
	MembrosColih           string    `json:"membros_colih" db:"membros_colih" validate:"required"`

	// 2. Paciente e hospital
	NomePaciente           string `json:"nome_paciente" db:"nome_paciente" validate:"required,max=200"`
	Sexo                   string `json:"sexo" db:"sexo" validate:"required,oneof=M F"`
	Idade                  string `json:"idade" db:"idade" validate:"required,max=50"`
	Batizado               bool   `json:"batizado" db:"batizado"`
	BoaCondicaoEspiritual  bool   `json:"boa_condicao_espiritual" db:"boa_condicao_espiritual"`
	CartaoDiretivas        bool   `json:"cartao_diretivas" db:"cartao_diretivas"`
	TipoAtendimento        string `json:"tipo_atendimento" db:"tipo_atendimento" validate:"required,oneof=PAR PUB"`
	PlanoSaude             string `json:"plano_saude" db:"plano_saude" validate:"max=150"`
	NomeHospitalID         int64  `json:"nome_hospital_id,omitempty" db:"nome_hospital_id"`
	NomeHospital           string `json:"nome_hospital,omitempty" db:"-"`
	NumeroQuarto           string `json:"numero_quarto" db:"numero_quarto" validate:"max=50"`
	TelefoneHospital       string `json:"telefone_hospital" db:"telefone_hospital" validate:"max=50"`
	Congregacao            string `json:"congregacao" db:"congregacao" validate:"required,max=150"`
	AnciaosContatados      string `json:"anciaos_contatados" db:"anciaos_contatados" validate:"required"`
	ComentariosEspirituais string `json:"comentarios_espirituais" db:"comentarios_espirituais"`

	// 3. Menores de idade ou recém-nascidos
	NomePai                 string `json:"nome_pai" db:"nome_pai" validate:"max=150"`
	PaiBatizado             bool   `json:"pai_batizado" db:"pai_batizado"`
	NomeMae                 string `json:"nome_mae" db:"nome_mae" validate:"max=150"`
	MaeBatizada             bool   `json:"mae_batizada" db:"mae_batizada"`
	PesoNascer              string `json:"peso_nascer" db:"peso_nascer" validate:"max=50"`
	Apgar                   string `json:"apgar" db:"apgar" validate:"max=50"`
	IdadeGestacional        string `json:"idade_gestacional" db:"idade_gestacional" validate:"max=50"`
	DataNascimento          Date   `json:"data_nascimento" db:"data_nascimento"`
	DocumentoS55Considerado bool   `json:"documento_s55_considerado" db:"documento_s55_considerado"`

	// 4. Informações médicas
	ProblemaEspecifico string `json:"problema_especifico" db:"problema_especifico" validate:"required"`
	HistoricoSaude     string `json:"historico_saude" db:"historico_saude" validate:"required"`

	// 5. Médicos e plano
	MedicoResponsavel          string `json:"medico_responsavel" db:"medico_responsavel" validate:"required,max=150"`
	EspecialidadeResponsavelID int64  `json:"especialidade_responsavel_id,omitempty" db:"especialidade_responsavel_id"`
	EspecialidadeResponsavel   string `json:"especialidade_responsavel,omitempty" db:"-"`
	OutroMedico                string `json:"outro_medico" db:"outro_medico" validate:"max=150"`
	EspecialidadeOutroID       int64  `json:"especialidade_outro_id,omitempty" db:"especialidade_outro_id"`
	PlanoTratamento            string `json:"plano_tratamento" db:"plano_tratamento" validate:"required"`
	EquipeInformadaColih       bool   `json:"equipe_informada_colih" db:"equipe_informada_colih"`
	EquipeCooperando           bool   `json:"equipe_cooperando" db:"equipe_cooperando"`
	AcaoJudicialMencionada     bool   `json:"acao_judicial_mencionada" db:"acao_judicial_mencionada"`

	// 6. Estratégias e artigos
	EstrategiasOpcoes            string `json:"estrategias_opcoes" db:"estrategias_opcoes" validate:"required"`
	ArtigosFornecidos            string `json:"artigos_fornecidos" db:"artigos_fornecidos"`
	MedicoCooperativoAposArtigos bool   `json:"medico_cooperativo_apos_artigos" db:"medico_cooperativo_apos_artigos"`

	// 7. Médico consultor e transferência
	MedicoConsultor                       string `json:"medico_consultor" db:"medico_consultor" validate:"max=150"`
	EspecialidadeConsultor                string `json:"especialidade_consultor" db:"especialidade_consultor" validate:"max=100"`
	InfosConsultor                        string `json:"infos_consultor" db:"infos_consultor"`
	NecessidadeTransferencia              bool   `json:"necessidade_transferencia" db:"necessidade_transferencia"`
	ProcedimentosTransferenciaConfirmados bool   `json:"procedimentos_transferencia_confirmados" db:"procedimentos_transferencia_confirmados"`
	HospitalDestino                       string `json:"hospital_destino" db:"hospital_destino" validate:"max=200"`
	MedicoDestino                         string `json:"medico_destino" db:"medico_destino" validate:"max=150"`
	TelefoneDestino                       string `json:"telefone_destino" db:"telefone_destino" validate:"max=50"`
	ColihDestinoInformada                 bool   `json:"colih_destino_informada" db:"colih_destino_informada"`

	// 8. Resultado
	ResultadoAcompanhamento     string `json:"resultado_acompanhamento" db:"resultado_acompanhamento"`
	AnciaosLocaisAcompanhamento bool   `json:"anciaos_locais_acompanhamento" db:"anciaos_locais_acompanhamento"`

	StatusGvp StatusGvp `json:"status_gvp" db:"status_gvp"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// NewPlanilha devolve uma planilha com os valores padrão do formulário
func NewPlanilha() PlanilhaEmergencia {
	return PlanilhaEmergencia{
		BoaCondicaoEspiritual: true,
		StatusGvp:             StatusPendente,
	}
}

// Validate valida as tags e a data/hora do contato
func (p *PlanilhaEmergencia) Validate() FieldErrors {
	fe := ValidateStruct(p)
	if p.DataHoraContato.IsZero() {
		fe.Add("data_hora_contato", "Este campo é obrigatório.")
	}
	return fe
}

func (p PlanilhaEmergencia) String() string {
	return fmt.Sprintf("%s - %s", p.NomePaciente, p.DataHoraContato.Format("02/01/2006"))
}

// PlanilhaFilter parâmetros da listagem de planilhas
type PlanilhaFilter struct {
	Paciente string `query:"paciente"`
	Status   string `query:"status"`
}

// PlanilhaResumo linha da listagem de planilhas
type PlanilhaResumo struct {
	ID              int64     `json:"id"`
	NomePaciente    string    `json:"nome_paciente"`
	DataHoraContato time.Time `json:"data_hora_contato"`
	NomeHospital    string    `json:"nome_hospital,omitempty"`
	StatusGvp       StatusGvp `json:"status_gvp"`
	StatusLabel     string    `json:"status_label"`
}
