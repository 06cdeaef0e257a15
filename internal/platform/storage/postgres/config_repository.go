package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/marcelojr/quinielas/internal/domain"
)

const (
	claveGeneral   = "general"
	claveSeguridad = "security"
)

// ConfigRepository guarda cada documento de configuración como JSON bajo su clave.
type ConfigRepository struct {
	db *gorm.DB
}

func NewConfigRepository(db *gorm.DB) *ConfigRepository {
	return &ConfigRepository{db: db}
}

type configModel struct {
	Clave         string         `gorm:"column:clave;primaryKey"`
	Datos         datatypes.JSON `gorm:"column:datos"`
	ActualizadaEn time.Time      `gorm:"column:actualizada_en"`
}

func (configModel) TableName() string {
	return "config"
}

func (r *ConfigRepository) ObtenerGeneral(ctx context.Context) (domain.ConfigGeneral, error) {
	var c domain.ConfigGeneral
	err := r.leer(ctx, claveGeneral, &c)
	return c, err
}

func (r *ConfigRepository) GuardarGeneral(ctx context.Context, c domain.ConfigGeneral) error {
	return r.escribir(ctx, claveGeneral, c)
}

func (r *ConfigRepository) ObtenerSeguridad(ctx context.Context) (domain.ConfigSeguridad, error) {
	var c domain.ConfigSeguridad
	err := r.leer(ctx, claveSeguridad, &c)
	return c, err
}

func (r *ConfigRepository) GuardarSeguridad(ctx context.Context, c domain.ConfigSeguridad) error {
	return r.escribir(ctx, claveSeguridad, c)
}

func (r *ConfigRepository) leer(ctx context.Context, clave string, destino any) error {
	var model configModel
	if err := r.db.WithContext(ctx).First(&model, "clave = ?", clave).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("gorm config: leer %s: %w", clave, err)
	}
	if err := json.Unmarshal(model.Datos, destino); err != nil {
		return fmt.Errorf("gorm config: decodificar %s: %w", clave, err)
	}
	return nil
}

func (r *ConfigRepository) escribir(ctx context.Context, clave string, datos any) error {
	raw, err := json.Marshal(datos)
	if err != nil {
		return fmt.Errorf("gorm config: codificar %s: %w", clave, err)
	}
	model := configModel{Clave: clave, Datos: datatypes.JSON(raw), ActualizadaEn: time.Now().UTC()}
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "clave"}},
		DoUpdates: clause.AssignmentColumns([]string{"datos", "actualizada_en"}),
	}).Create(&model).Error; err != nil {
		return fmt.Errorf("gorm config: guardar %s: %w", clave, err)
	}
	return nil
}

var _ domain.ConfigRepository = (*ConfigRepository)(nil)
