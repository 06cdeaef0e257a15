package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/marcelojr/quinielas/internal/domain"
)

type PagoRepository struct {
	db *gorm.DB
}

func NewPagoRepository(db *gorm.DB) *PagoRepository {
	return &PagoRepository{db: db}
}

type pagoModel struct {
	ID         string          `gorm:"column:id;primaryKey"`
	Usuario    string          `gorm:"column:usuario"`
	QuinielaID string          `gorm:"column:quiniela_id;index"`
	Monto      decimal.Decimal `gorm:"column:monto;type:numeric(12,2)"`
	Metodo     string          `gorm:"column:metodo"`
	FechaPago  time.Time       `gorm:"column:fecha_pago;index"`
	Estado     string          `gorm:"column:estado"`
	Notas      string          `gorm:"column:notas"`
}

func (pagoModel) TableName() string {
	return "pagos"
}

func (m pagoModel) toDomain() domain.Pago {
	return domain.Pago{
		ID:         domain.PagoID(m.ID),
		Usuario:    m.Usuario,
		QuinielaID: domain.QuinielaID(m.QuinielaID),
		Monto:      m.Monto,
		Metodo:     domain.MetodoPago(m.Metodo),
		FechaPago:  m.FechaPago,
		Estado:     domain.EstadoPago(m.Estado),
		Notas:      m.Notas,
	}
}

func fromDomainPago(p domain.Pago) pagoModel {
	return pagoModel{
		ID:         string(p.ID),
		Usuario:    p.Usuario,
		QuinielaID: string(p.QuinielaID),
		Monto:      p.Monto,
		Metodo:     string(p.Metodo),
		FechaPago:  p.FechaPago,
		Estado:     string(p.Estado),
		Notas:      p.Notas,
	}
}

func (r *PagoRepository) Create(ctx context.Context, p domain.Pago) error {
	model := fromDomainPago(p)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return fmt.Errorf("gorm pago: insertar: %w", err)
	}
	return nil
}

func (r *PagoRepository) Update(ctx context.Context, p domain.Pago) error {
	model := fromDomainPago(p)
	res := r.db.WithContext(ctx).Model(&pagoModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]any{
			"usuario":     model.Usuario,
			"quiniela_id": model.QuinielaID,
			"monto":       model.Monto,
			"metodo":      model.Metodo,
			"fecha_pago":  model.FechaPago,
			"estado":      model.Estado,
			"notas":       model.Notas,
		})
	if res.Error != nil {
		return fmt.Errorf("gorm pago: actualizar: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PagoRepository) Delete(ctx context.Context, id domain.PagoID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&pagoModel{})
	if res.Error != nil {
		return fmt.Errorf("gorm pago: eliminar: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PagoRepository) FindByID(ctx context.Context, id domain.PagoID) (domain.Pago, error) {
	var model pagoModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Pago{}, domain.ErrNotFound
		}
		return domain.Pago{}, fmt.Errorf("gorm pago: buscar id: %w", err)
	}
	return model.toDomain(), nil
}

func (r *PagoRepository) ListAll(ctx context.Context) ([]domain.Pago, error) {
	var models []pagoModel
	if err := r.db.WithContext(ctx).Order("fecha_pago DESC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("gorm pago: listar: %w", err)
	}
	result := make([]domain.Pago, len(models))
	for i, model := range models {
		result[i] = model.toDomain()
	}
	return result, nil
}

var _ domain.PagoRepository = (*PagoRepository)(nil)
