package app

import (
	"github.com/pokerdeck/core/internal/config"
	http_init "github.com/pokerdeck/core/internal/delivery/http/init"
	http_room "github.com/pokerdeck/core/internal/delivery/http/room"
	ws_room "github.com/pokerdeck/core/internal/delivery/ws/room"
	infra_redis_init "github.com/pokerdeck/core/internal/infra/redis/init"
	infra_session_cache "github.com/pokerdeck/core/internal/infra/redis/session"
	session_service "github.com/pokerdeck/core/internal/service/session"
	store_room "github.com/pokerdeck/core/internal/store/room"
)

func Go(cfg *config.Config) {
	redisConn := infra_redis_init.MustEstablishConn(cfg.Redis)

	// Single registry instance for the whole process, passed down
	// explicitly. Room state is volatile and dies with the process.
	rooms := store_room.New()

	sessionCache := infra_session_cache.New(redisConn, "session_cache")
	sessions := session_service.New(sessionCache, &cfg.Session.TTL)

	hub := ws_room.NewHub(rooms)
	go hub.Run()

	controllerPool := http_init.NewControllerPool()
	controllerPool.Add(http_room.New(rooms, sessions))
	controllerPool.Add(ws_room.NewController(hub, sessions))

	controllerPool.Register()
	controllerPool.RunAll(cfg.HTTP.Port)
}
