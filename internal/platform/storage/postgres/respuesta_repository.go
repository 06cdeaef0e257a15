package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/marcelojr/quinielas/internal/domain"
)

// RespuestaRepository guarda cada envío con sus pronósticos en una columna JSON.
type RespuestaRepository struct {
	db *gorm.DB
}

func NewRespuestaRepository(db *gorm.DB) *RespuestaRepository {
	return &RespuestaRepository{db: db}
}

type respuestaModel struct {
	ID           string         `gorm:"column:id;primaryKey"`
	QuinielaID   string         `gorm:"column:quiniela_id;index"`
	Folio        string         `gorm:"column:folio;uniqueIndex"`
	Nombre       string         `gorm:"column:nombre"`
	Email        string         `gorm:"column:email"`
	Telefono     string         `gorm:"column:telefono"`
	Predicciones datatypes.JSON `gorm:"column:predicciones"`
	EnviadaEn    time.Time      `gorm:"column:enviada_en;index"`
}

func (respuestaModel) TableName() string {
	return "respuestas_quinielas"
}

func (m respuestaModel) toDomain() (domain.Respuesta, error) {
	r := domain.Respuesta{
		ID:         domain.RespuestaID(m.ID),
		QuinielaID: domain.QuinielaID(m.QuinielaID),
		Folio:      m.Folio,
		Participante: domain.Participante{
			Nombre:   m.Nombre,
			Email:    m.Email,
			Telefono: m.Telefono,
		},
		EnviadaEn: m.EnviadaEn,
	}
	if len(m.Predicciones) > 0 {
		if err := json.Unmarshal(m.Predicciones, &r.Predicciones); err != nil {
			return domain.Respuesta{}, fmt.Errorf("gorm respuesta: decodificar predicciones %s: %w", m.ID, err)
		}
	}
	return r, nil
}

func fromDomainRespuesta(r domain.Respuesta) (respuestaModel, error) {
	preds, err := json.Marshal(r.Predicciones)
	if err != nil {
		return respuestaModel{}, fmt.Errorf("gorm respuesta: codificar predicciones: %w", err)
	}
	return respuestaModel{
		ID:           string(r.ID),
		QuinielaID:   string(r.QuinielaID),
		Folio:        r.Folio,
		Nombre:       r.Participante.Nombre,
		Email:        r.Participante.Email,
		Telefono:     r.Participante.Telefono,
		Predicciones: datatypes.JSON(preds),
		EnviadaEn:    r.EnviadaEn,
	}, nil
}

func (r *RespuestaRepository) Create(ctx context.Context, resp domain.Respuesta) error {
	model, err := fromDomainRespuesta(resp)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrFolioDuplicado
		}
		return fmt.Errorf("gorm respuesta: insertar: %w", err)
	}
	return nil
}

func (r *RespuestaRepository) FindByID(ctx context.Context, id domain.RespuestaID) (domain.Respuesta, error) {
	return r.buscar(ctx, "id = ?", string(id))
}

func (r *RespuestaRepository) FindByFolio(ctx context.Context, folio string) (domain.Respuesta, error) {
	return r.buscar(ctx, "folio = ?", folio)
}

func (r *RespuestaRepository) buscar(ctx context.Context, cond string, valor string) (domain.Respuesta, error) {
	var model respuestaModel
	if err := r.db.WithContext(ctx).First(&model, cond, valor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Respuesta{}, domain.ErrNotFound
		}
		return domain.Respuesta{}, fmt.Errorf("gorm respuesta: buscar: %w", err)
	}
	return model.toDomain()
}

func (r *RespuestaRepository) ListByQuiniela(ctx context.Context, id domain.QuinielaID) ([]domain.Respuesta, error) {
	var models []respuestaModel
	if err := r.db.WithContext(ctx).
		Where("quiniela_id = ?", id).
		Order("enviada_en DESC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("gorm respuesta: listar por quiniela: %w", err)
	}

	result := make([]domain.Respuesta, 0, len(models))
	for _, model := range models {
		resp, err := model.toDomain()
		if err != nil {
			return nil, err
		}
		result = append(result, resp)
	}
	return result, nil
}

func (r *RespuestaRepository) CountByQuiniela(ctx context.Context, id domain.QuinielaID) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&respuestaModel{}).
		Where("quiniela_id = ?", id).
		Count(&total).Error; err != nil {
		return 0, fmt.Errorf("gorm respuesta: contar por quiniela: %w", err)
	}
	return total, nil
}

func (r *RespuestaRepository) CountAll(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&respuestaModel{}).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("gorm respuesta: contar: %w", err)
	}
	return total, nil
}

func (r *RespuestaRepository) Delete(ctx context.Context, id domain.RespuestaID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&respuestaModel{})
	if res.Error != nil {
		return fmt.Errorf("gorm respuesta: eliminar: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

var _ domain.RespuestaRepository = (*RespuestaRepository)(nil)
