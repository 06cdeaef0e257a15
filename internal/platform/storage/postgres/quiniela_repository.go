package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/marcelojr/quinielas/internal/domain"
)

// QuinielaRepository guarda la quiniela en quinielas_activas y sus partidos como filas ordenadas.
type QuinielaRepository struct {
	db *gorm.DB
}

func NewQuinielaRepository(db *gorm.DB) *QuinielaRepository {
	return &QuinielaRepository{db: db}
}

type quinielaModel struct {
	ID                string         `gorm:"column:id;primaryKey"`
	Nombre            string         `gorm:"column:nombre;not null"`
	Descripcion       string         `gorm:"column:descripcion"`
	Activa            bool           `gorm:"column:activa;index"`
	FechaLimite       *time.Time     `gorm:"column:fecha_limite"`
	PermitirEdicion   bool           `gorm:"column:permitir_edicion"`
	MostrarResultados bool           `gorm:"column:mostrar_resultados"`
	Respuestas        int64          `gorm:"column:respuestas;not null;default:0"`
	CreadaEn          time.Time      `gorm:"column:creada_en;index"`
	ActualizadaEn     time.Time      `gorm:"column:actualizada_en"`
	Partidos          []partidoModel `gorm:"foreignKey:QuinielaID;references:ID"`
}

func (quinielaModel) TableName() string {
	return "quinielas_activas"
}

type partidoModel struct {
	QuinielaID string `gorm:"column:quiniela_id;primaryKey"`
	ID         string `gorm:"column:id;primaryKey"`
	Orden      int    `gorm:"column:orden"`
	Local      string `gorm:"column:local"`
	Visitante  string `gorm:"column:visitante"`
	Fecha      string `gorm:"column:fecha"`
	Hora       string `gorm:"column:hora"`
	Estadio    string `gorm:"column:estadio"`
}

func (partidoModel) TableName() string {
	return "partidos"
}

func (m quinielaModel) toDomain() domain.Quiniela {
	q := domain.Quiniela{
		ID:                domain.QuinielaID(m.ID),
		Nombre:            m.Nombre,
		Descripcion:       m.Descripcion,
		Activa:            m.Activa,
		FechaLimite:       m.FechaLimite,
		PermitirEdicion:   m.PermitirEdicion,
		MostrarResultados: m.MostrarResultados,
		Respuestas:        m.Respuestas,
		CreadaEn:          m.CreadaEn,
		ActualizadaEn:     m.ActualizadaEn,
		Partidos:          make([]domain.Partido, len(m.Partidos)),
	}
	for i, p := range m.Partidos {
		q.Partidos[i] = domain.Partido{
			ID:        domain.PartidoID(p.ID),
			Local:     p.Local,
			Visitante: p.Visitante,
			Fecha:     p.Fecha,
			Hora:      p.Hora,
			Estadio:   p.Estadio,
		}
	}
	return q
}

func fromDomainQuiniela(q domain.Quiniela) quinielaModel {
	return quinielaModel{
		ID:                string(q.ID),
		Nombre:            q.Nombre,
		Descripcion:       q.Descripcion,
		Activa:            q.Activa,
		FechaLimite:       q.FechaLimite,
		PermitirEdicion:   q.PermitirEdicion,
		MostrarResultados: q.MostrarResultados,
		Respuestas:        q.Respuestas,
		CreadaEn:          q.CreadaEn,
		ActualizadaEn:     q.ActualizadaEn,
	}
}

func fromDomainPartidos(id domain.QuinielaID, partidos []domain.Partido) []partidoModel {
	models := make([]partidoModel, len(partidos))
	for i, p := range partidos {
		models[i] = partidoModel{
			QuinielaID: string(id),
			ID:         string(p.ID),
			Orden:      i,
			Local:      p.Local,
			Visitante:  p.Visitante,
			Fecha:      p.Fecha,
			Hora:       p.Hora,
			Estadio:    p.Estadio,
		}
	}
	return models
}

func partidosOrdenados(db *gorm.DB) *gorm.DB {
	return db.Order("orden ASC")
}

func (r *QuinielaRepository) Create(ctx context.Context, q domain.Quiniela) error {
	model := fromDomainQuiniela(q)
	partidos := fromDomainPartidos(q.ID, q.Partidos)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Partidos").Create(&model).Error; err != nil {
			return err
		}
		if len(partidos) == 0 {
			return nil
		}
		return tx.Create(&partidos).Error
	})
	if err != nil {
		return fmt.Errorf("gorm quiniela: insertar: %w", err)
	}
	return nil
}

// Update reemplaza los partidos y los campos editables; respuestas y creada_en quedan fuera.
func (r *QuinielaRepository) Update(ctx context.Context, q domain.Quiniela) error {
	model := fromDomainQuiniela(q)
	partidos := fromDomainPartidos(q.ID, q.Partidos)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&quinielaModel{}).
			Where("id = ?", model.ID).
			Updates(map[string]any{
				"nombre":             model.Nombre,
				"descripcion":        model.Descripcion,
				"activa":             model.Activa,
				"fecha_limite":       model.FechaLimite,
				"permitir_edicion":   model.PermitirEdicion,
				"mostrar_resultados": model.MostrarResultados,
				"actualizada_en":     model.ActualizadaEn,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		if err := tx.Where("quiniela_id = ?", model.ID).Delete(&partidoModel{}).Error; err != nil {
			return err
		}
		if len(partidos) == 0 {
			return nil
		}
		return tx.Create(&partidos).Error
	})
	if errors.Is(err, domain.ErrNotFound) {
		return domain.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("gorm quiniela: actualizar: %w", err)
	}
	return nil
}

func (r *QuinielaRepository) Delete(ctx context.Context, id domain.QuinielaID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("quiniela_id = ?", id).Delete(&partidoModel{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&quinielaModel{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
	if errors.Is(err, domain.ErrNotFound) {
		return domain.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("gorm quiniela: eliminar: %w", err)
	}
	return nil
}

func (r *QuinielaRepository) FindByID(ctx context.Context, id domain.QuinielaID) (domain.Quiniela, error) {
	var model quinielaModel
	if err := r.db.WithContext(ctx).
		Preload("Partidos", partidosOrdenados).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Quiniela{}, domain.ErrNotFound
		}
		return domain.Quiniela{}, fmt.Errorf("gorm quiniela: buscar id: %w", err)
	}
	return model.toDomain(), nil
}

func (r *QuinielaRepository) ListAll(ctx context.Context) ([]domain.Quiniela, error) {
	var models []quinielaModel
	if err := r.db.WithContext(ctx).
		Preload("Partidos", partidosOrdenados).
		Order("creada_en DESC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("gorm quiniela: listar: %w", err)
	}

	result := make([]domain.Quiniela, len(models))
	for i, model := range models {
		result[i] = model.toDomain()
	}
	return result, nil
}

// IncrementarRespuestas usa SET respuestas = respuestas + delta para no perder envíos concurrentes.
func (r *QuinielaRepository) IncrementarRespuestas(ctx context.Context, id domain.QuinielaID, delta int64) error {
	res := r.db.WithContext(ctx).Model(&quinielaModel{}).
		Where("id = ?", id).
		UpdateColumn("respuestas", gorm.Expr("respuestas + ?", delta))
	if res.Error != nil {
		return fmt.Errorf("gorm quiniela: incrementar respuestas: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *QuinielaRepository) DefinirRespuestas(ctx context.Context, id domain.QuinielaID, total int64) error {
	res := r.db.WithContext(ctx).Model(&quinielaModel{}).
		Where("id = ?", id).
		UpdateColumn("respuestas", total)
	if res.Error != nil {
		return fmt.Errorf("gorm quiniela: definir respuestas: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

var _ domain.QuinielaRepository = (*QuinielaRepository)(nil)
