package router

import (
	"time"

	"github.com/XxProLuks/SisLanch/internal/config"
	"github.com/XxProLuks/SisLanch/internal/handler"
	"github.com/XxProLuks/SisLanch/internal/middleware"
	"github.com/XxProLuks/SisLanch/internal/model"
	"github.com/XxProLuks/SisLanch/internal/repository"
	"github.com/XxProLuks/SisLanch/internal/service"
	"github.com/XxProLuks/SisLanch/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	produtoRepo := repository.NewProdutoRepository(db)
	funcionarioRepo := repository.NewFuncionarioRepository(db)
	competenciaRepo := repository.NewCompetenciaRepository(db)
	pedidoRepo := repository.NewPedidoRepository(db)
	caixaRepo := repository.NewCaixaRepository(db)
	estoqueRepo := repository.NewEstoqueRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	produtoSvc := service.NewProdutoService(produtoRepo, rdb)
	estoqueSvc := service.NewEstoqueService(produtoRepo, estoqueRepo, dispatcher)
	consumoSvc := service.NewConsumoService(competenciaRepo)
	caixaSvc := service.NewCaixaService(caixaRepo)
	competenciaSvc := service.NewCompetenciaService(competenciaRepo, db)
	funcionarioSvc := service.NewFuncionarioService(funcionarioRepo, competenciaRepo, consumoSvc)
	pedidoSvc := service.NewPedidoService(pedidoRepo, produtoRepo, funcionarioRepo, competenciaRepo, auditRepo, estoqueSvc, consumoSvc, caixaSvc)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	produtosH := handler.NewProdutosHandler(produtoSvc)
	funcionariosH := handler.NewFuncionariosHandler(funcionarioSvc)
	pedidosH := handler.NewPedidosHandler(pedidoSvc)
	caixaH := handler.NewCaixaHandler(caixaSvc)
	estoqueH := handler.NewEstoqueHandler(estoqueSvc)
	competenciasH := handler.NewCompetenciasHandler(competenciaSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
	}

	admin := model.PerfilAdmin
	atendente := model.PerfilAtendente

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Pedidos — the counter flow, both roles
		v1.POST("/pedidos", middleware.RequireRole(atendente, admin), pedidosH.Criar)
		v1.GET("/pedidos", middleware.RequireRole(atendente, admin), pedidosH.Listar)
		v1.GET("/pedidos/cozinha", middleware.RequireRole(atendente, admin), pedidosH.Cozinha)
		v1.GET("/pedidos/resumo-hoje", middleware.RequireRole(atendente, admin), pedidosH.ResumoHoje)
		v1.GET("/pedidos/:id", middleware.RequireRole(atendente, admin), pedidosH.Buscar)
		v1.PATCH("/pedidos/:id/status", middleware.RequireRole(atendente, admin), pedidosH.AtualizarStatus)
		v1.DELETE("/pedidos/:id", middleware.RequireRole(admin), pedidosH.Cancelar)

		// Caixa
		caixa := v1.Group("/caixa")
		{
			caixa.POST("/abrir", middleware.RequireRole(atendente, admin), caixaH.Abrir)
			caixa.POST("/fechar", middleware.RequireRole(atendente, admin), caixaH.Fechar)
			caixa.GET("/resumo", middleware.RequireRole(atendente, admin), caixaH.Resumo)
			caixa.POST("/sangria", middleware.RequireRole(admin), caixaH.Sangria)
			caixa.POST("/suprimento", middleware.RequireRole(atendente, admin), caixaH.Suprimento)
			caixa.GET("/:id/transacoes", middleware.RequireRole(atendente, admin), caixaH.Transacoes)
			caixa.GET("/historico", middleware.RequireRole(atendente, admin), caixaH.Historico)
			caixa.GET("/relatorio", middleware.RequireRole(admin), caixaH.Relatorio)
		}

		// Estoque
		estoque := v1.Group("/estoque", middleware.RequireRole(admin))
		{
			estoque.POST("/entrada", estoqueH.Entrada)
			estoque.POST("/saida", estoqueH.Saida)
			estoque.POST("/ajuste", estoqueH.Ajuste)
			estoque.PUT("/:id/limites", estoqueH.Limites)
		}
		v1.GET("/estoque/movimentos", middleware.RequireRole(atendente, admin), estoqueH.Movimentos)
		v1.GET("/estoque/alertas", middleware.RequireRole(atendente, admin), estoqueH.Alertas)
		v1.GET("/estoque/resumo", middleware.RequireRole(atendente, admin), estoqueH.Resumo)

		// Funcionários — reads for both roles, writes admin-only
		v1.GET("/funcionarios", middleware.RequireRole(atendente, admin), funcionariosH.Listar)
		v1.GET("/funcionarios/consulta/:identificador", middleware.RequireRole(atendente, admin), funcionariosH.BuscarComSaldo)
		v1.GET("/funcionarios/:id", middleware.RequireRole(atendente, admin), funcionariosH.Buscar)
		v1.GET("/funcionarios/:id/consumo", middleware.RequireRole(atendente, admin), funcionariosH.HistoricoConsumo)
		funcionarios := v1.Group("/funcionarios", middleware.RequireRole(admin))
		{
			funcionarios.POST("", funcionariosH.Criar)
			funcionarios.PUT("/:id", funcionariosH.Atualizar)
			funcionarios.DELETE("/:id", funcionariosH.Desativar)
		}

		// Setores
		v1.GET("/setores", middleware.RequireRole(atendente, admin), funcionariosH.ListarSetores)
		setores := v1.Group("/setores", middleware.RequireRole(admin))
		{
			setores.POST("", funcionariosH.CriarSetor)
			setores.PUT("/:id", funcionariosH.AtualizarSetor)
		}

		// Produtos — catalog reads for both roles, writes admin-only
		v1.GET("/produtos", middleware.RequireRole(atendente, admin), produtosH.Listar)
		v1.GET("/produtos/:id", middleware.RequireRole(atendente, admin), produtosH.Buscar)
		produtos := v1.Group("/produtos", middleware.RequireRole(admin))
		{
			produtos.POST("", produtosH.Criar)
			produtos.PUT("/:id", produtosH.Atualizar)
			produtos.DELETE("/:id", produtosH.Desativar)
		}

		// Categorias
		v1.GET("/categorias", middleware.RequireRole(atendente, admin), produtosH.ListarCategorias)
		categorias := v1.Group("/categorias", middleware.RequireRole(admin))
		{
			categorias.POST("", produtosH.CriarCategoria)
			categorias.PUT("/:id", produtosH.AtualizarCategoria)
		}

		// Competências — period management is admin territory
		v1.GET("/competencias/atual", middleware.RequireRole(atendente, admin), competenciasH.Atual)
		competencias := v1.Group("/competencias", middleware.RequireRole(admin))
		{
			competencias.GET("", competenciasH.Listar)
			competencias.POST("", competenciasH.Criar)
			competencias.POST("/:id/fechar", competenciasH.Fechar)
			competencias.GET("/:id/consumos", competenciasH.Consumos)
			competencias.GET("/:id/export", competenciasH.ExportCSV)
		}

		// Usuários do sistema
		usuarios := v1.Group("/auth/usuarios", middleware.RequireRole(admin))
		{
			usuarios.POST("", authH.CriarUsuario)
			usuarios.GET("", authH.ListarUsuarios)
			usuarios.DELETE("/:id", authH.DesativarUsuario)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
