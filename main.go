package main

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"

	"github.com/arco365/go-arco-pos/arco/api"
	"github.com/arco365/go-arco-pos/arco/config"
	"github.com/arco365/go-arco-pos/arco/pos"
	"github.com/arco365/go-arco-pos/arco/receipt"
	"github.com/arco365/go-arco-pos/arco/session"
	"github.com/arco365/go-arco-pos/arco/util"
)

type consoleNotifier struct{}

func (consoleNotifier) Success(msg string) { fmt.Println("[OK] " + msg) }
func (consoleNotifier) Error(msg string)   { fmt.Println("[ERROR] " + msg) }
func (consoleNotifier) Info(msg string)    { fmt.Println("[INFO] " + msg) }

type app struct {
	cfg        *config.Config
	sessions   *session.Store
	controller *pos.Controller
	login      *pos.Login
	notifier   pos.Notifier
	clock      clockwork.Clock
	in         *bufio.Scanner

	forceLogin bool
}

func main() {

	_ = godotenv.Load()

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	if util.DebugEnabled() {
		logrus.SetLevel(logrus.DebugLevel)
	}

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("can't load configuration: %v", err)
	}

	clock := clockwork.NewRealClock()
	sessions := session.NewStore(cfg.SessionFile, clock)
	notifier := consoleNotifier{}

	a := &app{
		cfg:      cfg,
		sessions: sessions,
		notifier: notifier,
		clock:    clock,
		in:       bufio.NewScanner(os.Stdin),
	}

	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	opts := []api.Option{
		api.WithAuthRejectHook(func() {
			_ = sessions.Clear()
			a.forceLogin = true
			notifier.Error("Sesión rechazada por el servidor. Inicie sesión nuevamente.")
		}),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, api.WithBaseURL(cfg.BaseURL))
	}
	client := api.New(cfg.Environment, httpClient, sessions, opts...)

	a.controller = pos.NewController(
		api.NewProductService(client),
		api.NewInvoiceService(client),
		sessions,
		cfg.Invoice,
		notifier,
		clock,
	)
	a.login = pos.NewLogin(api.NewSecurityService(client), sessions, notifier)

	fmt.Printf("Sistema de Facturación ArcoERP (%s)\n", cfg.Environment.Name())
	a.run()
}

func (a *app) run() {
	for {
		if !a.authenticated() {
			if !a.loginLoop() {
				return
			}
		}
		a.forceLogin = false
		if !a.screenLoop() {
			return
		}
	}
}

func (a *app) authenticated() bool {
	sess, err := a.sessions.Load()
	return err == nil && sess != nil
}

// loginLoop prompts until a login succeeds. Returns false on EOF.
func (a *app) loginLoop() bool {
	for {
		fmt.Println("\nIniciar Sesión")

		user, ok := a.prompt("Usuario: ")
		if !ok {
			return false
		}
		password, ok := a.prompt("Contraseña: ")
		if !ok {
			return false
		}
		company, ok := a.prompt("Empresa: ")
		if !ok {
			return false
		}

		form := pos.LoginForm{User: user, Password: password, CompanyName: company}
		if err := a.login.Submit(context.Background(), form); err == nil {
			return true
		}
	}
}

// screenLoop runs the sale screen until logout, quit or a rejected
// session. Returns false when the program should exit.
func (a *app) screenLoop() bool {
	fmt.Println("Comandos: search <código> | add | list | qty <n> <cantidad> | rm <n> | submit | logout | quit")

	for {
		if a.forceLogin {
			a.controller.Logout()
			return true
		}

		line, ok := a.prompt("> ")
		if !ok {
			return false
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "search":
			code := ""
			if len(fields) > 1 {
				code = fields[1]
			}
			_ = a.controller.Search(context.Background(), code)
			if p := a.controller.Found(); p != nil && len(p.Precio) > 0 {
				fmt.Printf("  %s  %s  $%v  IVA %v%%\n",
					p.ProductoId, p.ProductoNombre, p.Precio[0].PrecioLista, p.ProductoTasaIVA)
			}

		case "add":
			_ = a.controller.AddFound()

		case "list":
			a.printDraft()

		case "qty":
			if len(fields) != 3 {
				a.notifier.Error("Uso: qty <n> <cantidad>")
				continue
			}
			idx, err1 := strconv.Atoi(fields[1])
			qty, err2 := strconv.Atoi(fields[2])
			items := a.controller.Draft().Items()
			if err1 != nil || err2 != nil || idx < 1 || idx > len(items) {
				a.notifier.Error("Línea inválida")
				continue
			}
			a.controller.SetQuantity(items[idx-1].ID, qty)
			a.printDraft()

		case "rm":
			if len(fields) != 2 {
				a.notifier.Error("Uso: rm <n>")
				continue
			}
			idx, err := strconv.Atoi(fields[1])
			items := a.controller.Draft().Items()
			if err != nil || idx < 1 || idx > len(items) {
				a.notifier.Error("Línea inválida")
				continue
			}
			a.controller.Remove(items[idx-1].ID)

		case "submit":
			res, err := a.controller.Submit(context.Background())
			if err == nil && a.cfg.ReceiptDir != "" {
				path, rerr := receipt.Write(a.cfg.ReceiptDir, a.cfg.Environment, res.FacturaId, a.clock.Now())
				if rerr != nil {
					logrus.Warnf("can't write receipt: %v", rerr)
				} else {
					a.notifier.Info("Recibo QR: " + path)
				}
			}

		case "logout":
			a.controller.Logout()
			a.notifier.Info("Sesión cerrada")
			return true

		case "quit", "exit":
			return false

		default:
			a.notifier.Error("Comando desconocido: " + fields[0])
		}
	}
}

func (a *app) prompt(label string) (string, bool) {
	fmt.Print(label)
	if !a.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(a.in.Text()), true
}

func (a *app) printDraft() {
	items := a.controller.Draft().Items()
	if len(items) == 0 {
		fmt.Println("  No hay productos agregados a la factura")
		return
	}

	fmt.Printf("  %-3s %-8s %-30s %5s %12s %12s %10s %12s\n",
		"#", "Código", "Producto", "Cant", "Precio", "Subtotal", "IVA", "Total")
	for i, item := range items {
		fmt.Printf("  %-3d %-8s %-30s %5d %12s %12s %10s %12s\n",
			i+1, item.ProductID, item.ProductName, item.Quantity,
			item.UnitPrice.String(), item.Subtotal.String(), item.VAT.String(), item.Total.String())
	}

	t := a.controller.Draft().Totals()
	fmt.Printf("  Subtotal: %s  IVA: %s  Total: %s\n",
		t.Subtotal.String(), t.VAT.String(), t.Total.String())
}
