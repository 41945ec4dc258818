package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/colih/gestao-medicos/models"
)

type colKind int

const (
	colValue    colKind = iota
	colNullText         // texto opcional: '' <-> NULL
	colNullRef          // chave estrangeira opcional: 0 <-> NULL
)

type planilhaField struct {
	col  string
	kind colKind
	ptr  any
}

// planilhaFields colunas editáveis da planilha, na ordem usada em SELECT, INSERT e UPDATE
func planilhaFields(p *models.PlanilhaEmergencia) []planilhaField {
	return []planilhaField{
		{"data_hora_contato", colValue, &p.DataHoraContato},
		{"nome_telefonou", colValue, &p.NomeTelefonou},
		{"contato_telefonou", colValue, &p.ContatoTelefonou},
		{"paciente_solicitou_ajuda", colValue, &p.PacienteSolicitouAjuda},
		{"parentesco", colValue, &p.Parentesco},
		{"membros_colih", colValue, &p.MembrosColih},
		{"nome_paciente", colValue, &p.NomePaciente},
		{"sexo", colValue, &p.Sexo},
		{"idade", colValue, &p.Idade},
		{"batizado", colValue, &p.Batizado},
		{"boa_condicao_espiritual", colValue, &p.BoaCondicaoEspiritual},
		{"cartao_diretivas", colValue, &p.CartaoDiretivas},
		{"tipo_atendimento", colValue, &p.TipoAtendimento},
		{"plano_saude", colNullText, &p.PlanoSaude},
		{"nome_hospital_id", colNullRef, &p.NomeHospitalID},
		{"numero_quarto", colNullText, &p.NumeroQuarto},
		{"telefone_hospital", colNullText, &p.TelefoneHospital},
		{"congregacao", colValue, &p.Congregacao},
		{"anciaos_contatados", colValue, &p.AnciaosContatados},
		{"comentarios_espirituais", colNullText, &p.ComentariosEspirituais},
		{"nome_pai", colNullText, &p.NomePai},
		{"pai_batizado", colValue, &p.PaiBatizado},
		{"nome_mae", colNullText, &p.NomeMae},
		{"mae_batizada", colValue, &p.MaeBatizada},
		{"peso_nascer", colNullText, &p.PesoNascer},
		{"apgar", colNullText, &p.Apgar},
		{"idade_gestacional", colNullText, &p.IdadeGestacional},
		{"data_nascimento", colValue, &p.DataNascimento},
		{"documento_s55_considerado", colValue, &p.DocumentoS55Considerado},
		{"problema_especifico", colValue, &p.ProblemaEspecifico},
		{"historico_saude", colValue, &p.HistoricoSaude},
		{"medico_responsavel", colValue, &p.MedicoResponsavel},
		{"especialidade_responsavel_id", colNullRef, &p.EspecialidadeResponsavelID},
		{"outro_medico", colNullText, &p.OutroMedico},
		{"especialidade_outro_id", colNullRef, &p.EspecialidadeOutroID},
		{"plano_tratamento", colValue, &p.PlanoTratamento},
		{"equipe_informada_colih", colValue, &p.EquipeInformadaColih},
		{"equipe_cooperando", colValue, &p.EquipeCooperando},
		{"acao_judicial_mencionada", colValue, &p.AcaoJudicialMencionada},
		{"estrategias_opcoes", colValue, &p.EstrategiasOpcoes},
		{"artigos_fornecidos", colNullText, &p.ArtigosFornecidos},
		{"medico_cooperativo_apos_artigos", colValue, &p.MedicoCooperativoAposArtigos},
		{"medico_consultor", colNullText, &p.MedicoConsultor},
		{"especialidade_consultor", colNullText, &p.EspecialidadeConsultor},
		{"infos_consultor", colNullText, &p.InfosConsultor},
		{"necessidade_transferencia", colValue, &p.NecessidadeTransferencia},
		{"procedimentos_transferencia_confirmados", colValue, &p.ProcedimentosTransferenciaConfirmados},
		{"hospital_destino", colNullText, &p.HospitalDestino},
		{"medico_destino", colNullText, &p.MedicoDestino},
		{"telefone_destino", colNullText, &p.TelefoneDestino},
		{"colih_destino_informada", colValue, &p.ColihDestinoInformada},
		{"resultado_acompanhamento", colNullText, &p.ResultadoAcompanhamento},
		{"anciaos_locais_acompanhamento", colValue, &p.AnciaosLocaisAcompanhamento},
	}
}

func (f planilhaField) selectExpr() string {
	switch f.kind {
	case colNullText:
		return "COALESCE(p." + f.col + ", '')"
	case colNullRef:
		return "COALESCE(p." + f.col + ", 0)"
	}
	return "p." + f.col
}

func (f planilhaField) param(n int) string {
	switch f.kind {
	case colNullText:
		return fmt.Sprintf("NULLIF($%d, '')", n)
	case colNullRef:
		return fmt.Sprintf("NULLIF($%d, 0)", n)
	}
	return fmt.Sprintf("$%d", n)
}

func (f planilhaField) value() any {
	switch v := f.ptr.(type) {
	case *string:
		return *v
	case *bool:
		return *v
	case *int64:
		return *v
	case *time.Time:
		return *v
	case *models.Date:
		return v.Ptr()
	}
	panic("planilha: tipo de coluna não suportado: " + f.col)
}

var planilhaSelect = func() string {
	fields := planilhaFields(&models.PlanilhaEmergencia{})
	exprs := make([]string, 0, len(fields))
	for _, f := range fields {
		exprs = append(exprs, f.selectExpr())
	}
	return `SELECT p.id, ` + strings.Join(exprs, ", ") + `,
	COALESCE(h.name, ''), COALESCE(s.name, ''), COALESCE(p.status_gvp, ''), p.created_at, p.updated_at
	FROM planilhas_emergencia p
	LEFT JOIN hospitals h ON h.id = p.nome_hospital_id
	LEFT JOIN specialties s ON s.id = p.especialidade_responsavel_id`
}()

func scanPlanilha(row scanner) (models.PlanilhaEmergencia, error) {
	p := models.PlanilhaEmergencia{}
	var nascimento pgtype.Date
	var status string

	dest := []any{&p.ID}
	for _, f := range planilhaFields(&p) {
		if _, ok := f.ptr.(*models.Date); ok {
			dest = append(dest, &nascimento)
			continue
		}
		dest = append(dest, f.ptr)
	}
	dest = append(dest, &p.NomeHospital, &p.EspecialidadeResponsavel, &status, &p.CreatedAt, &p.UpdatedAt)

	if err := row.Scan(dest...); err != nil {
		return p, err
	}
	p.DataNascimento = models.DateFromPg(nascimento)
	p.StatusGvp = models.StatusGvp(status).Normalized()
	return p, nil
}

// ListPlanilhas lista as planilhas da mais recente para a mais antiga
func ListPlanilhas(ctx context.Context, f models.PlanilhaFilter) ([]models.PlanilhaResumo, error) {
	var w whereBuilder
	if f.Paciente != "" {
		w.add("p.nome_paciente ILIKE ?", contains(f.Paciente))
	}
	if f.Status != "" {
		status := models.StatusGvp(strings.ToUpper(f.Status))
		if status == models.StatusPendente {
			w.add("(p.status_gvp IS NULL OR p.status_gvp = ?)", string(status))
		} else {
			w.add("p.status_gvp = ?", string(status))
		}
	}

	rows, err := DB.Query(ctx,
		`SELECT p.id, p.nome_paciente, p.data_hora_contato, COALESCE(h.name, ''), COALESCE(p.status_gvp, '')
		 FROM planilhas_emergencia p LEFT JOIN hospitals h ON h.id = p.nome_hospital_id`+
			w.sql()+" ORDER BY p.data_hora_contato DESC, p.id DESC", w.args...)
	if err != nil {
		return nil, wrap("list planilhas", err)
	}
	defer rows.Close()

	resumos := []models.PlanilhaResumo{}
	for rows.Next() {
		var r models.PlanilhaResumo
		var status string
		if err := rows.Scan(&r.ID, &r.NomePaciente, &r.DataHoraContato, &r.NomeHospital, &status); err != nil {
			return nil, wrap("scan planilha", err)
		}
		r.StatusGvp = models.StatusGvp(status).Normalized()
		r.StatusLabel = r.StatusGvp.Label()
		resumos = append(resumos, r)
	}
	return resumos, wrap("list planilhas", rows.Err())
}

// GetPlanilha busca a planilha completa pelo id
func GetPlanilha(ctx context.Context, id int64) (models.PlanilhaEmergencia, error) {
	p, err := scanPlanilha(DB.QueryRow(ctx, planilhaSelect+" WHERE p.id = $1", id))
	return p, wrap("get planilha", err)
}

// CreatePlanilha insere a planilha sempre como pendente
func CreatePlanilha(ctx context.Context, p *models.PlanilhaEmergencia) error {
	fields := planilhaFields(p)
	cols := make([]string, 0, len(fields)+1)
	params := make([]string, 0, len(fields)+1)
	args := make([]any, 0, len(fields)+1)
	for i, f := range fields {
		cols = append(cols, f.col)
		params = append(params, f.param(i+1))
		args = append(args, f.value())
	}
	cols = append(cols, "status_gvp")
	params = append(params, fmt.Sprintf("$%d", len(args)+1))
	args = append(args, string(models.StatusPendente))

	sql := "INSERT INTO planilhas_emergencia (" + strings.Join(cols, ", ") + ") VALUES (" +
		strings.Join(params, ", ") + ") RETURNING id, created_at, updated_at"
	err := DB.QueryRow(ctx, sql, args...).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err == nil {
		p.StatusGvp = models.StatusPendente
	}
	return wrap("create planilha", err)
}

// UpdatePlanilha grava os campos do formulário; status_gvp só muda pelo fluxo GVP
func UpdatePlanilha(ctx context.Context, p *models.PlanilhaEmergencia) error {
	fields := planilhaFields(p)
	sets := make([]string, 0, len(fields)+1)
	args := make([]any, 0, len(fields)+1)
	for i, f := range fields {
		sets = append(sets, f.col+" = "+f.param(i+1))
		args = append(args, f.value())
	}
	sets = append(sets, "updated_at = NOW()")
	args = append(args, p.ID)

	var status string
	sql := "UPDATE planilhas_emergencia SET " + strings.Join(sets, ", ") +
		fmt.Sprintf(" WHERE id = $%d RETURNING COALESCE(status_gvp, ''), created_at, updated_at", len(args))
	err := DB.QueryRow(ctx, sql, args...).Scan(&status, &p.CreatedAt, &p.UpdatedAt)
	p.StatusGvp = models.StatusGvp(status).Normalized()
	return wrap("update planilha", err)
}
