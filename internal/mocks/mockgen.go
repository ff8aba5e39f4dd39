//go:build gomock || generate

package mocks

//go:generate sh -c "go run go.uber.org/mock/mockgen -build_flags=\"-tags=gomock\" -package mocks -destination congestion.go github.com/1112Yogesh/TCP-like-UDP-Congestion-Control/internal/congestion SendAlgorithmWithDebugInfos"
