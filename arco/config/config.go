package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/spf13/viper"

	"github.com/arco365/go-arco-pos/arco"
)

type Config struct {
	Environment arco.Environment
	// BaseURL overrides the environment URL when set, for on-premise installs
	BaseURL     string
	HTTPTimeout time.Duration
	SessionFile string
	ReceiptDir  string
	Invoice     InvoiceDefaults
}

// InvoiceDefaults is the fixed operational metadata stamped on every
// submitted invoice: document type, resolution, customer, warehouse and
// payment type are decided by the back office, not at the till.
type InvoiceDefaults struct {
	DocumentoId    int
	ResolucionTipo string
	ClienteId      string
	TipoOperacion  string
	BodegaId       string
	TipoPago       string
}

// Load reads configuration from ARCO_* environment variables, falling
// back to an optional arco-pos.yaml in the working directory.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("ARCO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName("arco-pos")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetDefault("env", "demo")
	v.SetDefault("base_url", "")
	v.SetDefault("http_timeout", "15s")
	v.SetDefault("session_file", "")
	v.SetDefault("receipt_dir", "")
	v.SetDefault("invoice.documento_id", 14)
	v.SetDefault("invoice.resolucion_tipo", "04")
	v.SetDefault("invoice.cliente_id", "1")
	v.SetDefault("invoice.tipo_operacion", "1")
	v.SetDefault("invoice.bodega_id", "01")
	v.SetDefault("invoice.tipo_pago", "E")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "read config file")
		}
	}

	var env arco.Environment
	if err := env.UnmarshalText([]byte(v.GetString("env"))); err != nil {
		return nil, err
	}

	sessionFile := v.GetString("session_file")
	if sessionFile == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, errors.Wrap(err, "resolve user config dir")
		}
		sessionFile = filepath.Join(dir, "arco-pos", "session.json")
	}

	return &Config{
		Environment: env,
		BaseURL:     v.GetString("base_url"),
		HTTPTimeout: v.GetDuration("http_timeout"),
		SessionFile: sessionFile,
		ReceiptDir:  v.GetString("receipt_dir"),
		Invoice: InvoiceDefaults{
			DocumentoId:    v.GetInt("invoice.documento_id"),
			ResolucionTipo: v.GetString("invoice.resolucion_tipo"),
			ClienteId:      v.GetString("invoice.cliente_id"),
			TipoOperacion:  v.GetString("invoice.tipo_operacion"),
			BodegaId:       v.GetString("invoice.bodega_id"),
			TipoPago:       v.GetString("invoice.tipo_pago"),
		},
	}, nil
}
