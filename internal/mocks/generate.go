package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/game --output domain/game --outpkg gamemock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name EventRepository --dir ../domain/game --output domain/game --outpkg gamemock --filename event_repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/video --output domain/video --outpkg videomock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name CameraRepository --dir ../domain/video --output domain/video --outpkg videomock --filename camera_repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/team --output domain/team --outpkg teammock --filename repository_mock.go
