package main

import (
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/RendaCapital/api-investimentos/internal/auth"
	"github.com/RendaCapital/api-investimentos/internal/comissao"
	"github.com/RendaCapital/api-investimentos/internal/conciliacao"
	"github.com/RendaCapital/api-investimentos/internal/debenture"
	"github.com/RendaCapital/api-investimentos/internal/hierarquia"
	"github.com/RendaCapital/api-investimentos/internal/investimento"
	"github.com/RendaCapital/api-investimentos/internal/notificacao"
	"github.com/RendaCapital/api-investimentos/internal/parcela"
	"github.com/RendaCapital/api-investimentos/internal/serie"
	"github.com/RendaCapital/api-investimentos/internal/usuario"
	"github.com/RendaCapital/api-investimentos/internal/utils/db"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Erro ao iniciar logger:", err)
	}
	defer logger.Sync()

	database, err := db.ConnectDataBase()
	if err != nil {
		log.Fatal("Erro ao conectar no banco:", err)
	}

	// AutoMigrate para todos os modelos
	if err := database.AutoMigrate(
		&usuario.Usuario{},
		&debenture.Debenture{},
		&serie.Serie{},
		&serie.PerfilComissao{},
		&investimento.Investimento{},
		&investimento.HierarquiaRastreio{},
		&comissao.Cronograma{},
		&parcela.ParcelaComissao{},
		&parcela.HistoricoParcela{},
	); err != nil {
		log.Fatal("Erro no AutoMigrate:", err)
	}

	// Conta "casa" que recebe a atribuição global quando a cadeia não
	// alcança um global.
	var globalPadraoID uint
	if v := os.Getenv("GLOBAL_PADRAO_ID"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			log.Fatal("GLOBAL_PADRAO_ID inválido:", err)
		}
		globalPadraoID = uint(id)
	}

	// Repositórios e serviços
	usuarioRepo := usuario.NewRepository(database)
	webhook := notificacao.NewWebhook(logger)
	resolver := hierarquia.NewResolver(usuarioRepo, globalPadraoID, webhook, logger)

	debentureRepo := debenture.NewRepository(database)
	serieRepo := serie.NewRepository(database)
	cronogramaRepo := comissao.NewRepository(database)
	parcelaRepo := parcela.NewRepository(database)
	parcelaService := parcela.NewService(parcelaRepo, logger)
	investimentoService := investimento.NewService(database, resolver, logger)
	conciliacaoService := conciliacao.NewService(database, logger)

	// Handlers
	usuarioHandler := usuario.NewHandler(usuarioRepo)
	debentureHandler := debenture.NewHandler(debentureRepo)
	serieHandler := serie.NewHandler(serieRepo)
	comissaoHandler := comissao.NewHandler(cronogramaRepo)
	parcelaHandler := parcela.NewHandler(parcelaRepo, parcelaService)
	investimentoHandler := investimento.NewHandler(investimentoService)
	conciliacaoHandler := conciliacao.NewHandler(conciliacaoService)

	// Router
	r := mux.NewRouter()

	// Rotas públicas
	r.HandleFunc("/login", usuarioHandler.Login).Methods("POST")
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"UP"}`))
	}).Methods("GET")

	// Rotas autenticadas
	api := r.NewRoute().Subrouter()
	api.Use(auth.MiddlewareAutenticacao)

	// Usuários da hierarquia
	api.HandleFunc("/usuarios", usuarioHandler.Criar).Methods("POST")
	api.HandleFunc("/usuarios", usuarioHandler.Listar).Methods("GET")
	api.HandleFunc("/usuarios/{id}", usuarioHandler.BuscarPorID).Methods("GET")
	api.HandleFunc("/usuarios/{id}", usuarioHandler.Atualizar).Methods("PUT")
	api.Handle("/usuarios/{id}",
		auth.RequireGlobal(http.HandlerFunc(usuarioHandler.Deletar))).Methods("DELETE")
	api.HandleFunc("/usuarios/{id}/cronogramas", comissaoHandler.ListarPorRecebedor).Methods("GET")

	// Debêntures e séries
	api.HandleFunc("/debentures", debentureHandler.Criar).Methods("POST")
	api.HandleFunc("/debentures", debentureHandler.Listar).Methods("GET")
	api.HandleFunc("/debentures/{id}", debentureHandler.BuscarPorID).Methods("GET")
	api.HandleFunc("/debentures/{id}", debentureHandler.Atualizar).Methods("PUT")
	api.HandleFunc("/debentures/{id}", debentureHandler.Deletar).Methods("DELETE")
	api.HandleFunc("/series", serieHandler.Criar).Methods("POST")
	api.HandleFunc("/series", serieHandler.Listar).Methods("GET")
	api.HandleFunc("/series/{id}", serieHandler.BuscarPorID).Methods("GET")
	api.HandleFunc("/series/{id}", serieHandler.Atualizar).Methods("PUT")
	api.HandleFunc("/series/{id}", serieHandler.Deletar).Methods("DELETE")
	api.HandleFunc("/series/{id}/perfis-comissao", serieHandler.ListarPerfis).Methods("GET")
	api.HandleFunc("/series/{id}/perfis-comissao", serieHandler.SalvarPerfis).Methods("PUT")

	// Investimentos
	api.HandleFunc("/investimentos", investimentoHandler.Criar).Methods("POST")
	api.HandleFunc("/investimentos", investimentoHandler.Listar).Methods("GET")
	api.HandleFunc("/investimentos/{id}", investimentoHandler.BuscarPorID).Methods("GET")
	api.HandleFunc("/investimentos/{id}", investimentoHandler.Deletar).Methods("DELETE")
	api.HandleFunc("/investimentos/{id}/resgate", investimentoHandler.Resgatar).Methods("POST")
	api.HandleFunc("/investimentos/{id}/cronogramas", comissaoHandler.ListarPorInvestimento).Methods("GET")

	// Parcelas de comissão
	api.HandleFunc("/cronogramas/{cid}/parcelas", parcelaHandler.ListarPorCronograma).Methods("GET")
	api.HandleFunc("/parcelas/resumo", parcelaHandler.Resumo).Methods("GET")
	api.HandleFunc("/parcelas/status-lote", parcelaHandler.AtualizarStatusLote).Methods("PATCH")
	api.HandleFunc("/parcelas/{id}/status", parcelaHandler.AtualizarStatus).Methods("PATCH")
	api.HandleFunc("/parcelas/{id}/historico", parcelaHandler.Historico).Methods("GET")

	// Conciliação bancária
	api.HandleFunc("/conciliacao/exportar", conciliacaoHandler.Exportar).Methods("GET")
	api.Handle("/conciliacao/importar",
		auth.RequireGlobal(http.HandlerFunc(conciliacaoHandler.Importar))).Methods("POST")

	handler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Origin", "Content-Type", "Authorization"},
	}).Handler(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	logger.Info("servidor iniciado", zap.String("porta", port))
	log.Fatal(http.ListenAndServe(":"+port, handler))
}
