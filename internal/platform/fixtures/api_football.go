package fixtures

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/marcelojr/quinielas/internal/domain"
)

const (
	DefaultBaseURL = "https://v3.football.api-sports.io"
	LigaMX         = 262
)

var (
	ErrSinCredenciales = errors.New("api-football: api key no configurada")
	ErrSinPartidos     = errors.New("api-football: respuesta sin partidos")
)

type APIConfig struct {
	BaseURL string
	APIKey  string
	Liga    int
	Timeout time.Duration
	// PorSegundo limita las llamadas salientes; el plan gratuito admite pocas por minuto.
	PorSegundo float64
	Zona       *time.Location
}

// APIFootball consulta /fixtures?league=<liga>&season=<año>&next=<n>.
type APIFootball struct {
	cfg     APIConfig
	http    *http.Client
	limiter *rate.Limiter
	clock   domain.Clock
}

func NewAPIFootball(cfg APIConfig, clock domain.Clock) *APIFootball {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Liga == 0 {
		cfg.Liga = LigaMX
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.PorSegundo <= 0 {
		cfg.PorSegundo = 1
	}
	if cfg.Zona == nil {
		cfg.Zona = time.UTC
	}
	return &APIFootball{
		cfg:     cfg,
		http:    &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(rate.Limit(cfg.PorSegundo), 1),
		clock:   clock,
	}
}

type respuestaFixtures struct {
	Errors   json.RawMessage `json:"errors"`
	Response []fixtureAPI    `json:"response"`
}

type fixtureAPI struct {
	Fixture struct {
		ID    int64  `json:"id"`
		Date  string `json:"date"`
		Venue struct {
			Name string `json:"name"`
		} `json:"venue"`
	} `json:"fixture"`
	League struct {
		Round string `json:"round"`
	} `json:"league"`
	Teams struct {
		Home struct {
			Name string `json:"name"`
		} `json:"home"`
		Away struct {
			Name string `json:"name"`
		} `json:"away"`
	} `json:"teams"`
}

func (a *APIFootball) ProximosPartidos(ctx context.Context, cantidad int) (domain.Calendario, error) {
	if a.cfg.APIKey == "" {
		return domain.Calendario{}, ErrSinCredenciales
	}
	if err := a.limiter.Wait(ctx); err != nil {
		return domain.Calendario{}, fmt.Errorf("api-football: limitador: %w", err)
	}

	ahora := a.clock.Ahora().In(a.cfg.Zona)
	params := url.Values{}
	params.Set("league", strconv.Itoa(a.cfg.Liga))
	params.Set("season", strconv.Itoa(ahora.Year()))
	params.Set("next", strconv.Itoa(cantidad))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.cfg.BaseURL+"/fixtures?"+params.Encode(), nil)
	if err != nil {
		return domain.Calendario{}, fmt.Errorf("api-football: crear request: %w", err)
	}
	req.Header.Set("x-apisports-key", a.cfg.APIKey)
	req.Header.Set("Accept", "application/json")

	resp, err := a.http.Do(req)
	if err != nil {
		return domain.Calendario{}, fmt.Errorf("api-football: request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return domain.Calendario{}, fmt.Errorf("api-football: status %d", resp.StatusCode)
	}

	var cuerpo respuestaFixtures
	if err := json.NewDecoder(resp.Body).Decode(&cuerpo); err != nil {
		return domain.Calendario{}, fmt.Errorf("api-football: decodificar: %w", err)
	}
	// La API responde 200 con "errors" lleno cuando la llave o el plan no alcanzan.
	if tieneErrores(cuerpo.Errors) {
		return domain.Calendario{}, fmt.Errorf("api-football: errores en respuesta: %s", cuerpo.Errors)
	}
	if len(cuerpo.Response) == 0 {
		return domain.Calendario{}, ErrSinPartidos
	}

	partidos := make([]domain.Partido, 0, len(cuerpo.Response))
	for _, f := range cuerpo.Response {
		inicio, err := time.Parse(time.RFC3339, f.Fixture.Date)
		if err != nil {
			return domain.Calendario{}, fmt.Errorf("api-football: fecha invalida en fixture %d: %w", f.Fixture.ID, err)
		}
		inicio = inicio.In(a.cfg.Zona)
		partidos = append(partidos, domain.Partido{
			ID:        domain.PartidoID(strconv.FormatInt(f.Fixture.ID, 10)),
			Local:     f.Teams.Home.Name,
			Visitante: f.Teams.Away.Name,
			Fecha:     inicio.Format("2006-01-02"),
			Hora:      inicio.Format("15:04"),
			Estadio:   f.Fixture.Venue.Name,
		})
	}

	jornada := cuerpo.Response[0].League.Round
	if jornada == "" {
		jornada = etiquetaJornada(JornadaActual(ahora))
	}
	return domain.Calendario{
		Fuente:   domain.FuenteAPI,
		Torneo:   TorneoActual(ahora),
		Jornada:  jornada,
		Partidos: partidos,
	}, nil
}

func tieneErrores(raw json.RawMessage) bool {
	switch string(raw) {
	case "", "null", "[]", "{}":
		return false
	default:
		return true
	}
}

var _ domain.FuenteFixtures = (*APIFootball)(nil)
